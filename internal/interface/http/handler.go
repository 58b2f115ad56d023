package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yanqian/funzone-site/internal/domain/catalog"
	"github.com/yanqian/funzone-site/internal/domain/contact"
	"github.com/yanqian/funzone-site/internal/domain/gallery"
	"github.com/yanqian/funzone-site/internal/domain/mappin"
	"github.com/yanqian/funzone-site/pkg/util"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	catalogSvc catalog.Service
	contactSvc contact.Service
	gallerySvc gallery.Service
	logger     *slog.Logger
	now        util.Clock
}

// NewHandler constructs the root HTTP handler.
func NewHandler(catalogSvc catalog.Service, contactSvc contact.Service, gallerySvc gallery.Service, logger *slog.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		contactSvc: contactSvc,
		gallerySvc: gallerySvc,
		logger:     logger.With("component", "http.handler"),
		now:        util.NowUTC,
	}
}

type branchDetail struct {
	catalog.Listing
	Contact contact.Links `json:"contact"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListBranches returns filtered branches with their live status.
func (h *Handler) ListBranches(c *gin.Context) {
	filter, herr := parseBranchFilter(c)
	if herr != nil {
		abortWithError(c, herr)
		return
	}
	items, err := h.catalogSvc.ListBranches(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": items, "count": len(items)})
}

// GetBranch returns one branch with status and contact links.
func (h *Handler) GetBranch(c *gin.Context) {
	listing, err := h.catalogSvc.GetBranch(c.Request.Context(), c.Param("ref"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, branchDetail{Listing: listing, Contact: h.contactSvc.Links(listing.Branch)})
}

// BranchStatus resolves the open state at "at" (RFC 3339) or now.
func (h *Handler) BranchStatus(c *gin.Context) {
	at := h.now()
	if raw := strings.TrimSpace(c.Query("at")); raw != "" {
		parsed, err := parseInstant(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "at must be an RFC 3339 timestamp", err))
			return
		}
		at = parsed
	}

	report, err := h.catalogSvc.BranchStatus(c.Request.Context(), c.Param("ref"), at)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	trace.SpanFromContext(c.Request.Context()).SetAttributes(
		attribute.String("funzone.branch", report.Branch),
		attribute.String("funzone.open_state", string(report.Status.State)),
	)
	c.JSON(http.StatusOK, report)
}

// parseInstant reads an RFC 3339 timestamp. Query decoding turns an
// unescaped "+hh:mm" offset into " hh:mm", so that form is restored first.
func parseInstant(raw string) (time.Time, error) {
	if n := len(raw); n > 6 && raw[n-6] == ' ' {
		raw = raw[:n-6] + "+" + raw[n-5:]
	}
	return time.Parse(time.RFC3339, raw)
}

// OpenContact records a contact click and returns the outbound link.
func (h *Handler) OpenContact(c *gin.Context) {
	var req contact.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.Branch = c.Param("ref")

	redirect, err := h.contactSvc.Open(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, redirect)
}

// Compare returns up to three branches side by side.
func (h *Handler) Compare(c *gin.Context) {
	var refs []string
	for _, value := range c.QueryArray("branches") {
		refs = append(refs, strings.Split(value, ",")...)
	}
	items, err := h.catalogSvc.Compare(c.Request.Context(), refs)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": items})
}

// Programs lists the structured programs.
func (h *Handler) Programs(c *gin.Context) {
	items, err := h.catalogSvc.ListPrograms(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": items})
}

// GetProgram returns one program by slug.
func (h *Handler) GetProgram(c *gin.Context) {
	program, err := h.catalogSvc.GetProgram(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, program)
}

// BirthdayBranches lists the branches that host birthday parties.
func (h *Handler) BirthdayBranches(c *gin.Context) {
	items, err := h.catalogSvc.BirthdayBranches(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": items})
}

type birthdayDetail struct {
	catalog.BirthdayPage
	Contact contact.Links `json:"contact"`
}

// Birthdays returns the birthday page of a branch with booking links.
func (h *Handler) Birthdays(c *gin.Context) {
	page, err := h.catalogSvc.Birthdays(c.Request.Context(), c.Param("ref"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, birthdayDetail{
		BirthdayPage: page,
		Contact:      h.contactSvc.LinksWithMessage(page.Listing.Branch, page.BookingMessage()),
	})
}

// Cities lists the distinct branch cities.
func (h *Handler) Cities(c *gin.Context) {
	cities, err := h.catalogSvc.Cities(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// Neighborhoods lists curated neighborhoods with branch counts.
func (h *Handler) Neighborhoods(c *gin.Context) {
	items, err := h.catalogSvc.Neighborhoods(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"neighborhoods": items})
}

// Activities lists activities filtered by energy, age, location and category.
func (h *Handler) Activities(c *gin.Context) {
	filter := catalog.ActivityFilter{
		Energy:   catalog.EnergyLevel(strings.ToLower(c.Query("energy"))),
		Age:      catalog.AgeBand(c.Query("age")),
		Location: c.Query("location"),
		Category: c.Query("category"),
	}
	items, err := h.catalogSvc.ListActivities(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": items})
}

// Gallery lists branch photos.
func (h *Handler) Gallery(c *gin.Context) {
	images, err := h.gallerySvc.List(c.Request.Context(), gallery.Filter{
		Location: c.Query("location"),
		Activity: c.Query("activity"),
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

// MapPins returns pin positions for the static map plus multi-stop routes.
func (h *Handler) MapPins(c *gin.Context) {
	filter, herr := parseBranchFilter(c)
	if herr != nil {
		abortWithError(c, herr)
		return
	}
	items, err := h.catalogSvc.ListBranches(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	branches := make([]catalog.Branch, 0, len(items))
	for _, item := range items {
		branches = append(branches, item.Branch)
	}
	pins := mappin.Pins(branches, func(b catalog.Branch) string {
		return contact.DirectionsHref(b.Coordinates.Lat, b.Coordinates.Lng)
	})
	c.JSON(http.StatusOK, gin.H{"pins": pins, "routes": mappin.AllBranchRoutes(branches)})
}

// TrendingContacts returns the most used contact channels.
func (h *Handler) TrendingContacts(c *gin.Context) {
	items, err := h.contactSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": items})
}

func parseBranchFilter(c *gin.Context) (catalog.BranchFilter, *HTTPError) {
	filter := catalog.BranchFilter{
		Type:         catalog.BranchType(strings.ToLower(c.Query("type"))),
		City:         c.Query("city"),
		Activity:     c.Query("activity"),
		Neighborhood: c.Query("neighborhood"),
		Query:        c.Query("q"),
		Sort:         catalog.SortOrder(strings.ToLower(c.Query("sort"))),
	}
	switch filter.Type {
	case "", "all", catalog.BranchTypePlayground, catalog.BranchTypeSports:
	default:
		return filter, NewHTTPError(http.StatusBadRequest, "invalid_request", "type must be playground or sports", nil)
	}
	switch filter.Sort {
	case catalog.SortCatalog, catalog.SortName, catalog.SortCity, catalog.SortOpen:
	default:
		return filter, NewHTTPError(http.StatusBadRequest, "invalid_request", "sort must be name, city or open", nil)
	}
	if raw := c.Query("openNow"); raw != "" {
		openNow, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, NewHTTPError(http.StatusBadRequest, "invalid_request", "openNow must be a boolean", err)
		}
		filter.OpenNow = openNow
	}
	return filter, nil
}

package contactstore

import (
	"strings"

	"github.com/yanqian/funzone-site/internal/domain/contact"
)

const memberSep = "|"

func encodeMember(branch string, channel contact.Channel) string {
	return branch + memberSep + string(channel)
}

func decodeMember(member string) (string, contact.Channel) {
	branch, channel, _ := strings.Cut(member, memberSep)
	return branch, contact.Channel(channel)
}

package contactstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/funzone-site/internal/domain/contact"
)

// ValkeyStore keeps contact click counters in a Valkey sorted set.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "contact"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) IncrementClick(ctx context.Context, branch string, channel contact.Channel) error {
	if branch == "" {
		return nil
	}
	cmd := s.client.B().Zincrby().Key(s.clicksKey()).Increment(1).Member(encodeMember(branch, channel)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) TopClicks(ctx context.Context, limit int) ([]contact.ClickStat, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.clicksKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]contact.ClickStat, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] per element
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].ToFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			// RESP2 returns a flat alternating array.
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].ToFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		branch, channel := decodeMember(member)
		out = append(out, contact.ClickStat{Branch: branch, Channel: channel, Count: int64(score)})
	}
	return out, nil
}

func (s *ValkeyStore) clicksKey() string {
	return fmt.Sprintf("%s:clicks", s.prefix)
}

var _ contact.Store = (*ValkeyStore)(nil)

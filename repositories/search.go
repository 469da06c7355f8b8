package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"

	"chat-room/domain"
	"chat-room/domain/search"
)

type ISearchIndex interface {
	Index(m domain.Message) error
	Search(ctx context.Context, q search.Query) ([]domain.Message, error)
}

// SearchIndex mirrors the message log into bluge so history can be
// queried by text without scanning the whole log.
type SearchIndex struct {
	writer *bluge.Writer
}

func NewSearchIndex(writer *bluge.Writer) *SearchIndex {
	return &SearchIndex{writer: writer}
}

// Index adds one message to the index. Messages are immutable, so every
// document gets a fresh id and there is never an update case.
func (s *SearchIndex) Index(m domain.Message) error {
	millis := m.SentAtMillis()
	doc := bluge.NewDocument(uuid.NewString()).
		AddField(bluge.NewTextField("text", m.Text).StoreValue()).
		AddField(bluge.NewKeywordField("username", m.Username).StoreValue()).
		AddField(bluge.NewNumericField("ts", float64(millis)).Sortable()).
		AddField(bluge.NewStoredOnlyField("timestamp", []byte(strconv.FormatInt(millis, 10))))
	return s.writer.Update(doc.ID(), doc)
}

// Search runs a parsed query, newest matches first.
func (s *SearchIndex) Search(ctx context.Context, q search.Query) ([]domain.Message, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	query := bluge.NewBooleanQuery()
	if q.Terms != "" {
		query.AddMust(bluge.NewMatchQuery(q.Terms).SetField("text"))
	} else {
		query.AddMust(bluge.NewMatchAllQuery())
	}
	if q.Author != "" {
		query.AddMust(bluge.NewTermQuery(q.Author).SetField("username"))
	}

	request := bluge.NewTopNSearch(q.Limit, query).SortBy([]string{"-ts"})
	it, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var out []domain.Message
	for {
		match, err := it.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		var m domain.Message
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "text":
				m.Text = string(value)
			case "username":
				m.Username = string(value)
			case "timestamp":
				if millis, err := strconv.ParseInt(string(value), 10, 64); err == nil {
					m.SentAt = time.UnixMilli(millis).UTC()
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

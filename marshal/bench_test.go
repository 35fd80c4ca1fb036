package marshal_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"field-marshaller/fields"
	"field-marshaller/marshal"
)

type benchDocument struct {
	UID         string
	Email       string
	Description string
	Version     int
	Height      int
	Width       int
	Status      string
	OtherThings []string
	URLs        map[string]string
	CreatedAt   time.Time
	Owner       struct{ Name string }
}

func benchTable() marshal.Table {
	return marshal.NewTable(
		marshal.E("uid", fields.Email()),
		marshal.E("email", fields.Email()),
		marshal.E("description", fields.Str()),
		marshal.E("version", fields.Int()),
		marshal.E("height", fields.Int()),
		marshal.E("width", fields.Int()),
		marshal.E("status", fields.Str()),
		marshal.E("other_things", fields.List(fields.Str())),
		marshal.E("urls", fields.Dict(nil)),
		marshal.E("created_at", fields.DateTime("")),
		marshal.E("owner.name", fields.Str()),
	)
}

func benchDocuments(n int) []benchDocument {
	docs := make([]benchDocument, n)
	for i := range docs {
		docs[i] = benchDocument{
			UID:         fmt.Sprintf("user%d@example.com", i),
			Email:       "someone@example.com",
			Description: "a description",
			Version:     i,
			Height:      1080,
			Width:       1920,
			Status:      "active",
			OtherThings: []string{"a", "b", "c"},
			URLs:        map[string]string{"self": "https://example.com"},
			CreatedAt:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		docs[i].Owner.Name = "owner"
	}

	return docs
}

func BenchmarkMarshalOne(b *testing.B) {
	m := marshal.New(marshal.WithMetrics(false))
	table := benchTable()
	doc := benchDocuments(1)[0]

	b.ReportAllocs()

	for b.Loop() {
		if _, _, err := m.MarshalOne(doc, table); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshalMany(b *testing.B) {
	table := benchTable()
	docs := benchDocuments(1000)

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			m := marshal.New(marshal.WithWorkers(workers), marshal.WithMetrics(false))
			defer m.Close()

			b.ReportAllocs()

			for b.Loop() {
				if _, err := m.Marshal(context.Background(), docs, table, true); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"field-marshaller/fields"
	"field-marshaller/marshal"
)

// document is the large source object dumped by the benchmark.
type document struct {
	UID            string
	UID2           string
	Links          []uuid.UUID
	Description    string
	AltDescription string
	Version        int
	VersionName    string
	Email          string
	Height         int
	Width          int
	ThumbHeight    int
	ThumbWidth     int
	Name           string
	AltName        string
	ThirdName      string
	Page           int
	Size           int
	Rotation       int
	Status         string
	OtherThings    []string
	URLs           map[string]string
	UserInput      string
	CreatedAt      time.Time
	CreatedBy      string
	UpdatedAt      *time.Time
	UpdatedBy      string
	DeletedAt      *time.Time
	DeletedBy      string
}

func largeTable() marshal.Table {
	return marshal.NewTable(
		marshal.E("uid", fields.Email()),
		marshal.E("uid2", fields.Email()),
		marshal.E("links", fields.List(fields.UUID())),
		marshal.E("description", fields.Str()),
		marshal.E("alt_description", fields.Str()),
		marshal.E("version", fields.Int()),
		marshal.E("version_name", fields.Str()),
		marshal.E("email", fields.Email()),
		marshal.E("height", fields.Int()),
		marshal.E("width", fields.Int()),
		marshal.E("thumb_height", fields.Int()),
		marshal.E("thumb_width", fields.Int()),
		marshal.E("name", fields.Str()),
		marshal.E("alt_name", fields.Str()),
		marshal.E("third_name", fields.Str()),
		marshal.E("page", fields.Int()),
		marshal.E("size", fields.Int()),
		marshal.E("rotation", fields.Int()),
		marshal.E("status", fields.Str()),
		marshal.E("other_things", fields.List(fields.Str())),
		marshal.E("urls", fields.Dict(fields.Str())),
		marshal.E("user_input", fields.Int()),
		marshal.E("created_at", fields.DateTime("")),
		marshal.E("created_by", fields.Str()),
		marshal.E("updated_at", fields.DateTime("")),
		marshal.E("updated_by", fields.Str()),
		marshal.E("deleted_at", fields.DateTime("")),
		marshal.E("deleted_by", fields.Str()),
	)
}

// documents builds n documents. Every invalidEvery-th one carries a user input
// that is not a number, 0 disables them.
func documents(n, invalidEvery int) []document {
	created := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	docs := make([]document, n)
	for i := range docs {
		input := fmt.Sprint(i)
		if invalidEvery > 0 && i%invalidEvery == 0 {
			input = "n/a"
		}

		docs[i] = document{
			UID:            fmt.Sprintf("user%d@example.com", i),
			UID2:           fmt.Sprintf("alt%d@example.com", i),
			Links:          []uuid.UUID{uuid.New(), uuid.New()},
			Description:    "A fairly long description of the document",
			AltDescription: "Another description",
			Version:        i % 10,
			VersionName:    fmt.Sprintf("v%d", i%10),
			Email:          "owner@example.com",
			Height:         1080,
			Width:          1920,
			ThumbHeight:    108,
			ThumbWidth:     192,
			Name:           fmt.Sprintf("document-%d", i),
			AltName:        "alt",
			ThirdName:      "third",
			Page:           i % 100,
			Size:           1 << 20,
			Rotation:       90,
			Status:         "published",
			OtherThings:    []string{"a", "b", "c"},
			URLs:           map[string]string{"self": fmt.Sprintf("https://example.com/docs/%d", i)},
			UserInput:      input,
			CreatedAt:      created,
			CreatedBy:      "importer",
			UpdatedAt:      &updated,
			UpdatedBy:      "editor",
			DeletedBy:      "",
		}
	}

	return docs
}

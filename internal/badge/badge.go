// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package badge maps form-response rows to catalog records.
package badge

import (
	"context"

	"github.com/pdiddy/minibadge/internal/images"
	"github.com/pdiddy/minibadge/internal/rows"
	"github.com/pdiddy/minibadge/pkg/types"
)

// ImageMaterializer stores a remote image locally under a filename stem.
type ImageMaterializer interface {
	Materialize(ctx context.Context, rawURL, stem string) images.Result
}

// Mapped is a record together with what happened to its images.
type Mapped struct {
	Badge types.Badge
	Front images.Result
	Back  images.Result
}

// Mapper turns rows into badges using a fixed ColumnMap.
type Mapper struct {
	columns ColumnMap
	images  ImageMaterializer
}

// NewMapper returns a Mapper. A nil materializer leaves image fields as
// submitted.
func NewMapper(columns ColumnMap, m ImageMaterializer) *Mapper {
	return &Mapper{columns: columns, images: m}
}

// Map builds the badge for row. It reports false when the row has no title;
// such rows are dropped without further processing.
func (m *Mapper) Map(ctx context.Context, row rows.Row) (Mapped, bool) {
	get := func(field string) string { return m.columns.Get(row, field) }

	title := get(FieldTitle)
	if title == "" {
		return Mapped{}, false
	}
	slug := Slug(title)
	timestamp := get(FieldTimestamp)

	rawFront := get(FieldFrontImageURL)
	rawBack := get(FieldBackImageURL)
	front := m.materialize(ctx, rawFront, slug+"-front")
	back := m.materialize(ctx, rawBack, slug+"-back")

	return Mapped{
		Badge: types.Badge{
			Title:                 title,
			Author:                get(FieldAuthor),
			ProfilePictureURL:     get(FieldProfilePictureURL),
			FrontImageURL:         front.Resolve(rawFront),
			BackImageURL:          back.Resolve(rawBack),
			Description:           get(FieldDescription),
			SpecialInstructions:   get(FieldSpecialInstructions),
			SolderingInstructions: get(FieldSolderingInstructions),
			SolderingDifficulty:   get(FieldSolderingDifficulty),
			QuantityMade:          ParseQuantity(get(FieldQuantityMade)),
			Category:              get(FieldCategory),
			ConferenceYear:        DeriveYear(timestamp),
			BoardHouse:            get(FieldBoardHouse),
			HowToAcquire:          get(FieldHowToAcquire),
			Rarity:                get(FieldRarity),
			Timestamp:             timestamp,
		},
		Front: front,
		Back:  back,
	}, true
}

func (m *Mapper) materialize(ctx context.Context, rawURL, stem string) images.Result {
	if m.images == nil {
		return images.Result{Outcome: images.OutcomePassthrough, Path: rawURL}
	}
	return m.images.Materialize(ctx, rawURL, stem)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package badge

import (
	"fmt"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/minibadge/internal/rows"
)

// Field names, matching the JSON keys of types.Badge.
const (
	FieldTitle                 = "title"
	FieldAuthor                = "author"
	FieldCategory              = "category"
	FieldSolderingDifficulty   = "solderingDifficulty"
	FieldRarity                = "rarity"
	FieldQuantityMade          = "quantityMade"
	FieldHowToAcquire          = "howToAcquire"
	FieldBoardHouse            = "boardHouse"
	FieldDescription           = "description"
	FieldSpecialInstructions   = "specialInstructions"
	FieldSolderingInstructions = "solderingInstructions"
	FieldProfilePictureURL     = "profilePictureUrl"
	FieldFrontImageURL         = "frontImageUrl"
	FieldBackImageURL          = "backImageUrl"
	FieldTimestamp             = "timestamp"
)

// defaultHeaders are the question titles of the submission form.
// conferenceYear has no column; it is derived from the timestamp.
var defaultHeaders = []struct{ field, header string }{
	{FieldTitle, "Title of your badge"},
	{FieldAuthor, "Your handle/name"},
	{FieldCategory, "Type of badge"},
	{FieldSolderingDifficulty, "Soldering difficulty"},
	{FieldRarity, "Rarity"},
	{FieldQuantityMade, "How many did you make?"},
	{FieldHowToAcquire, "How do people get one?"},
	{FieldBoardHouse, "PCB company used"},
	{FieldDescription, "Description"},
	{FieldSpecialInstructions, "Special instructions"},
	{FieldSolderingInstructions, "Assembly and soldering instructions"},
	{FieldProfilePictureURL, "Your profile picture"},
	{FieldFrontImageURL, "Front image"},
	{FieldBackImageURL, "Back image"},
	{FieldTimestamp, "Timestamp"},
}

// ColumnMap resolves record fields to the exact, case-sensitive column
// headers of the export. A ColumnMap is immutable once built.
type ColumnMap struct {
	fields  []string
	headers map[string]string
}

// DefaultColumns returns the map for the stock submission form.
func DefaultColumns() ColumnMap {
	c := ColumnMap{headers: make(map[string]string, len(defaultHeaders))}
	for _, d := range defaultHeaders {
		c.fields = append(c.fields, d.field)
		c.headers[d.field] = d.header
	}
	return c
}

// NewColumns returns the default map with overrides applied. Override keys
// must be known field names and match case-insensitively; empty override
// values are ignored.
func NewColumns(overrides map[string]string) (ColumnMap, error) {
	c := DefaultColumns()
	if len(overrides) == 0 {
		return c, nil
	}

	byLower := make(map[string]string, len(c.fields))
	for _, f := range c.fields {
		byLower[strings.ToLower(f)] = f
	}

	var unknown []string
	for key, header := range overrides {
		field, ok := byLower[strings.ToLower(key)]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if header = strings.TrimSpace(header); header != "" {
			c.headers[field] = header
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return ColumnMap{}, fmt.Errorf("unknown column field(s): %s", strings.Join(unknown, ", "))
	}
	return c, nil
}

// Fields returns the mapped field names in declaration order.
func (c ColumnMap) Fields() []string {
	return slices.Clone(c.fields)
}

// Header returns the column header for field, or "" when the field is unmapped.
func (c ColumnMap) Header(field string) string {
	return c.headers[field]
}

// Get returns the trimmed cell for field, or "" when the column is absent.
func (c ColumnMap) Get(row rows.Row, field string) string {
	header := c.Header(field)
	if header == "" {
		return ""
	}
	val, ok := row[header]
	if !ok {
		return ""
	}
	return strings.TrimSpace(val)
}

// MarshalYAML renders the map as an ordered mapping of field to header.
func (c ColumnMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range c.fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.headers[field]},
		)
	}
	return node, nil
}

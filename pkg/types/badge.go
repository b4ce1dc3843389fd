// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records and configuration shared across stages.
package types

// Badge is one catalog entry built from a single form submission.
// Field order here is the key order of the emitted JSON objects.
type Badge struct {
	Title                 string `json:"title" yaml:"title"`
	Author                string `json:"author" yaml:"author"`
	ProfilePictureURL     string `json:"profilePictureUrl" yaml:"profile_picture_url"`
	FrontImageURL         string `json:"frontImageUrl" yaml:"front_image_url"`
	BackImageURL          string `json:"backImageUrl" yaml:"back_image_url"`
	Description           string `json:"description" yaml:"description"`
	SpecialInstructions   string `json:"specialInstructions" yaml:"special_instructions"`
	SolderingInstructions string `json:"solderingInstructions" yaml:"soldering_instructions"`
	SolderingDifficulty   string `json:"solderingDifficulty" yaml:"soldering_difficulty"`

	// QuantityMade is 0 when the submitted value is missing or not an integer.
	QuantityMade int `json:"quantityMade" yaml:"quantity_made"`

	Category string `json:"category" yaml:"category"`

	// ConferenceYear is derived from Timestamp; empty when it cannot be parsed.
	ConferenceYear string `json:"conferenceYear" yaml:"conference_year"`

	BoardHouse   string `json:"boardHouse" yaml:"board_house"`
	HowToAcquire string `json:"howToAcquire" yaml:"how_to_acquire"`
	Rarity       string `json:"rarity" yaml:"rarity"`

	// Timestamp is the form's submission time, kept verbatim.
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

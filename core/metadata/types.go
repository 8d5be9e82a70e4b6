package metadata

import (
	"encoding/json"
	"fmt"

	"nft-toolkit/core/utils"
)

// Attribute is one trait of an item. In a template, Value is a template string.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// UnmarshalJSON accepts any scalar value and keeps its string form, since
// hand-written templates often use bare numbers for trait values.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var raw struct {
		TraitType any `json:"trait_type"`
		Value     any `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Value.(type) {
	case map[string]any, []any:
		return fmt.Errorf("attribute value must be a scalar, got %T", raw.Value)
	}
	a.TraitType = utils.ToString(raw.TraitType)
	a.Value = utils.ToString(raw.Value)
	return nil
}

// File references one asset of the item.
type File struct {
	URI  string `json:"uri"`
	Type string `json:"type,omitempty"`
}

// Creator is a royalty recipient.
type Creator struct {
	Address  string `json:"address"`
	Share    int    `json:"share"`
	Verified bool   `json:"verified,omitempty"`
}

// Properties holds the files and creators of an item.
type Properties struct {
	Category string    `json:"category,omitempty"`
	Files    []File    `json:"files,omitempty"`
	Creators []Creator `json:"creators,omitempty"`
}

// Collection groups items under a collection name.
type Collection struct {
	Name   string `json:"name,omitempty"`
	Family string `json:"family,omitempty"`
}

// Metadata is a per-item NFT metadata document.
type Metadata struct {
	Name                 string      `json:"name"`
	Symbol               string      `json:"symbol,omitempty"`
	Description          string      `json:"description"`
	SellerFeeBasisPoints int         `json:"seller_fee_basis_points"`
	Image                string      `json:"image,omitempty"`
	AnimationURL         string      `json:"animation_url,omitempty"`
	ExternalURL          string      `json:"external_url,omitempty"`
	Attributes           []Attribute `json:"attributes"`
	Properties           *Properties `json:"properties,omitempty"`
	Collection           *Collection `json:"collection,omitempty"`
}

// Template is a Metadata document whose strings carry placeholders.
type Template = Metadata

// Clone returns a deep copy. Slices of the copy are never nil for attributes,
// so serialized metadata always carries an "attributes" array.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	out := *m
	out.Attributes = make([]Attribute, len(m.Attributes))
	copy(out.Attributes, m.Attributes)

	if m.Properties != nil {
		props := *m.Properties
		if m.Properties.Files != nil {
			props.Files = make([]File, len(m.Properties.Files))
			copy(props.Files, m.Properties.Files)
		}
		if m.Properties.Creators != nil {
			props.Creators = make([]Creator, len(m.Properties.Creators))
			copy(props.Creators, m.Properties.Creators)
		}
		out.Properties = &props
	}
	if m.Collection != nil {
		c := *m.Collection
		out.Collection = &c
	}
	return &out
}

// Files returns the declared files, or nil when the document has none.
func (m *Metadata) Files() []File {
	if m.Properties == nil {
		return nil
	}
	return m.Properties.Files
}

// CollectionMetadata describes the collection NFT itself.
type CollectionMetadata struct {
	Name                 string      `json:"name"`
	Symbol               string      `json:"symbol"`
	Description          string      `json:"description"`
	SellerFeeBasisPoints int         `json:"seller_fee_basis_points"`
	Image                string      `json:"image,omitempty"`
	ExternalURL          string      `json:"external_url,omitempty"`
	Properties           *Properties `json:"properties"`
}

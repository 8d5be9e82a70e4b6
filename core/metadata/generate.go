package metadata

// Placeholder image path used by generated templates. It resolves to
// "0.png", "1.png", ... per item until a real image is uploaded.
const DefaultImageTemplate = "$ID$.png"

// Trait pairs an attribute name with the template value it is filled from,
// for example {Name: "Color", TemplateValue: "$COLOR$"}.
type Trait struct {
	Name          string `json:"name"`
	TemplateValue string `json:"templateValue"`
}

// TemplateParams configures GenerateTemplate.
type TemplateParams struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	SellerFeeBasisPoints int     `json:"seller_fee_basis_points"`
	Symbol               string  `json:"symbol"`
	ExternalURL          string  `json:"external_url"`
	CreatorAddress       string  `json:"creator_address"`
	Traits               []Trait `json:"traits"`
}

// DefaultTemplateParams returns the parameters used for a fresh collection.
func DefaultTemplateParams() TemplateParams {
	return TemplateParams{
		Name:                 "NFT",
		Description:          "Description of an NFT",
		SellerFeeBasisPoints: 1000,
		Symbol:               "NFT",
		ExternalURL:          "https://url.com",
	}
}

// GenerateTemplate builds an item template with one attribute per trait.
// Empty string parameters fall back to DefaultTemplateParams.
func GenerateTemplate(p TemplateParams) *Template {
	def := DefaultTemplateParams()
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Description == "" {
		p.Description = def.Description
	}
	if p.Symbol == "" {
		p.Symbol = def.Symbol
	}
	if p.ExternalURL == "" {
		p.ExternalURL = def.ExternalURL
	}

	t := &Template{
		Name:                 p.Name,
		Description:          p.Description,
		SellerFeeBasisPoints: p.SellerFeeBasisPoints,
		Symbol:               p.Symbol,
		Image:                DefaultImageTemplate,
		ExternalURL:          p.ExternalURL,
		Attributes:           make([]Attribute, 0, len(p.Traits)),
		Properties: &Properties{
			Category: "image",
			Files:    []File{{URI: DefaultImageTemplate, Type: "image/png"}},
			Creators: []Creator{{Address: p.CreatorAddress, Share: 100}},
		},
	}
	for _, trait := range p.Traits {
		t.Attributes = append(t.Attributes, Attribute{
			TraitType: trait.Name,
			Value:     trait.TemplateValue,
		})
	}
	return t
}

// ExtractTraits lists the template's attributes as traits, in order.
func ExtractTraits(t *Template) []Trait {
	if t == nil {
		return nil
	}
	traits := make([]Trait, 0, len(t.Attributes))
	for _, a := range t.Attributes {
		traits = append(traits, Trait{Name: a.TraitType, TemplateValue: a.Value})
	}
	return traits
}

// CollectionParams configures GenerateCollectionMetadata.
type CollectionParams struct {
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	Description          string `json:"description"`
	SellerFeeBasisPoints int    `json:"seller_fee_basis_points"`
	CreatorAddress       string `json:"creator_address"`
	ImageURI             string `json:"image_uri"`
	ImageType            string `json:"image_type"`
	ExternalURL          string `json:"external_url"`
}

// GenerateCollectionMetadata builds the metadata of the collection NFT.
// The image is only declared when ImageURI is set.
func GenerateCollectionMetadata(p CollectionParams) *CollectionMetadata {
	if p.Name == "" {
		p.Name = "NFT Collection"
	}
	if p.Symbol == "" {
		p.Symbol = "NFCOLL"
	}
	if p.Description == "" {
		p.Description = "Description of NFT Collection"
	}

	m := &CollectionMetadata{
		Name:                 p.Name,
		Symbol:               p.Symbol,
		Description:          p.Description,
		SellerFeeBasisPoints: p.SellerFeeBasisPoints,
		ExternalURL:          p.ExternalURL,
		Properties:           &Properties{},
	}
	if p.ImageURI != "" {
		m.Image = p.ImageURI
		m.Properties.Files = []File{{URI: p.ImageURI, Type: p.ImageType}}
	}
	m.Properties.Creators = []Creator{{Address: p.CreatorAddress, Share: 100}}
	return m
}

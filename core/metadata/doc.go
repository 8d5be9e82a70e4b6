// Package metadata defines the NFT metadata document shared by templates and
// generated per-item metadata.
//
// JSON field names follow the off-chain NFT metadata convention exactly
// (name, symbol, description, seller_fee_basis_points, image, external_url,
// attributes[].trait_type/value, properties.files[].uri/type,
// properties.creators[].address/share) so documents stay interoperable with
// marketplaces and minting programs.
//
// # Templates
//
// A Template is a Metadata document whose string fields may contain `$TOKEN$`
// placeholders (see core/template). Clone gives every entry an independent copy
// so no two entries ever share attribute or file slices.
//
// # Validation
//
// ParseTemplate checks raw JSON against TemplateSchema with gojsonschema before
// decoding, so malformed templates are rejected at save time rather than
// producing broken metadata later.
package metadata

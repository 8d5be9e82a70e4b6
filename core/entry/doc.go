// Package entry turns rows of item data into finished NFT metadata.
//
// An Entry is one row of imported data plus the state derived while the
// collection moves towards minting: a local image, its uploaded URI, the
// generated metadata and the uploaded metadata URI.
//
// # Processing
//
// Processor.Process applies the collection template to every entry. The work
// per entry is the pure function Apply, so processing the same entries with
// the same template always yields identical metadata.
//
// # Rarity
//
// DetermineRarity counts how often each value of each field occurs. The report
// is informational and never feeds back into processing.
//
// # Images
//
// AssignImages maps image files onto entries by the first number in the file
// name ("7.png" and "item_007.jpg" both belong to entry 7).
package entry

// Package feature ingests genomic feature annotations for plotting.
//
// It parses GFF3 annotation tables into typed [Feature] records, keeping only
// gene and pseudogene rows that carry a Name attribute, and classifies them
// into colored display classes by configurable name-prefix rules. The layout
// and composition packages consume the resulting [Classified] records; all
// input validation happens here so the core can stay assertion-free.
package feature

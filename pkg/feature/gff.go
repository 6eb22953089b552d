package feature

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/karyoviz/karyoplot/pkg/errors"
)

// bpPerMb converts GFF3 base-pair coordinates to the Mb axis units the
// layout works in.
const bpPerMb = 1e6

// ParseGFF reads a GFF3 annotation table and returns the gene and pseudogene
// features that carry a Name attribute. Rows with fewer than nine columns are
// treated as headers and skipped, as are rows of other feature types and rows
// without a Name. A row with more than one Name attribute or a strand other
// than "+" or "-" is rejected.
func ParseGFF(r io.Reader) ([]Feature, error) {
	var features []Feature

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		f, ok, err := parseLine(scanner.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if ok {
			features = append(features, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "read annotation table")
	}
	return features, nil
}

// ParseGFFFile opens path and parses it with [ParseGFF].
func ParseGFFFile(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ParseGFF(f)
}

func parseLine(line string, lineNo int) (Feature, bool, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 9 {
		// Header or directive line.
		return Feature{}, false, nil
	}

	var category Category
	switch cols[2] {
	case "gene":
		category = CategoryGene
	case "pseudogene":
		category = CategoryPseudogene
	default:
		return Feature{}, false, nil
	}

	name, ok, err := nameAttribute(cols[8], lineNo)
	if err != nil {
		return Feature{}, false, err
	}
	if !ok {
		return Feature{}, false, nil
	}

	start, err := strconv.ParseFloat(cols[3], 64)
	if err != nil || start < 0 {
		return Feature{}, false, errors.New(errors.ErrCodeInvalidRecord,
			"line %d: invalid start position %q", lineNo, cols[3])
	}

	var strand Strand
	switch cols[6] {
	case "+":
		strand = StrandPlus
	case "-":
		strand = StrandMinus
	default:
		return Feature{}, false, errors.New(errors.ErrCodeInvalidRecord,
			"line %d: expected strand \"+\" or \"-\", got %q", lineNo, cols[6])
	}

	return Feature{
		Chromosome: cols[0],
		Position:   start / bpPerMb,
		Category:   category,
		Strand:     strand,
		Name:       name,
	}, true, nil
}

// nameAttribute extracts the Name attribute from a GFF3 attributes column.
// At most one Name per row is allowed.
func nameAttribute(attrs string, lineNo int) (string, bool, error) {
	var name string
	found := false
	for _, kv := range strings.Split(attrs, ";") {
		if v, ok := strings.CutPrefix(kv, "Name="); ok {
			if found {
				return "", false, errors.New(errors.ErrCodeInvalidRecord,
					"line %d: expected no more than one Name attribute", lineNo)
			}
			name, found = v, true
		}
	}
	return name, found, nil
}

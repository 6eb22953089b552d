package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/karyoviz/karyoplot/pkg/cache"
	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
	karyoio "github.com/karyoviz/karyoplot/pkg/io"
)

// parseResult carries the outputs of the parse stage.
type parseResult struct {
	features   []feature.Classified
	rules      []feature.ClassRule
	sourceHash string
	rulesHash  string
}

// loadRules returns the classification rules for opts, defaulting to the
// built-in set, together with their fingerprint for cache keys.
func loadRules(opts Options) ([]feature.ClassRule, string, error) {
	rules := feature.DefaultRules()
	if opts.Rules != "" {
		var err error
		rules, err = feature.LoadRules(opts.Rules)
		if err != nil {
			return nil, "", err
		}
	}
	data, _ := json.Marshal(rules)
	return rules, cache.Hash(data), nil
}

// readInput reads the input file and fingerprints it. The hash is keyed on
// the input kind so a JSON file and a GFF file with identical bytes cannot
// collide.
func readInput(path string) (data []byte, sourceHash string, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, "", err
	}
	kind := "gff"
	if isFeaturesJSON(path) {
		kind = "json"
	}
	return data, cache.HashFile(kind, data), nil
}

// parseData classifies the raw input bytes. Features JSON inputs (from
// `karyoplot parse` or external tools) come through pre-classified and skip
// the classifier.
func parseData(path string, data []byte, rules []feature.ClassRule) ([]feature.Classified, error) {
	if isFeaturesJSON(path) {
		return karyoio.ReadJSON(bytes.NewReader(data))
	}
	raw, err := feature.ParseGFF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return feature.NewClassifier(rules).Apply(raw), nil
}

// isFeaturesJSON reports whether path names a features JSON file rather than
// an annotation table.
func isFeaturesJSON(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

// marshalFeatures encodes a classified feature set for caching.
func marshalFeatures(features []feature.Classified) ([]byte, error) {
	var buf bytes.Buffer
	if err := karyoio.WriteJSON(features, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalFeatures decodes a cached feature set.
func unmarshalFeatures(data []byte) ([]feature.Classified, error) {
	return karyoio.ReadJSON(bytes.NewReader(data))
}

// Package profile reads spending from a profile file or from key=value
// pairs and turns it into a SpendingRecord.
package profile

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mozzadell/cc-optimizer/internal/clienterror"
	"github.com/mozzadell/cc-optimizer/internal/fileutils"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"
	"github.com/mozzadell/cc-optimizer/internal/spending"

	"gopkg.in/yaml.v3"
)

// Loader builds spending records from external input. Unknown categories
// are logged and skipped.
type Loader struct {
	logger logging.Logger
}

// NewLoader creates a Loader. A nil logger discards log output.
func NewLoader(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Loader{logger: logger.WithField(logging.FieldComponent, "ProfileLoader")}
}

// LoadFile reads a {category: amount} profile. Files ending in .json are
// decoded as JSON, everything else as YAML.
func (l *Loader) LoadFile(path string, record models.SpendingRecord) (models.SpendingRecord, error) {
	data, err := fileutils.ReadFile(path, fileutils.MaxProfileBytes)
	if err != nil {
		return record, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	raw := map[string]interface{}{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return record, &clienterror.ProfileError{Path: path, Err: err}
	}

	l.logger.Debug("Loaded spending profile",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldCount, len(raw)))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	models.SortCategoryKeys(keys)

	for _, key := range keys {
		text, err := valueText(raw[key])
		if err != nil {
			return record, &clienterror.ProfileError{Path: path, Err: fmt.Errorf("category %q: %w", key, err)}
		}
		record = l.apply(record, key, text)
	}
	return record, nil
}

// ParsePairs applies key=value pairs such as "groceries=500" on top of record.
func (l *Loader) ParsePairs(pairs []string, record models.SpendingRecord) (models.SpendingRecord, error) {
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return record, fmt.Errorf("invalid spending %q, expected category=amount", pair)
		}
		record = l.apply(record, key, strings.TrimSpace(value))
	}
	return record, nil
}

func (l *Loader) apply(record models.SpendingRecord, key, text string) models.SpendingRecord {
	category, ok := models.ParseCategory(strings.ToLower(key))
	if !ok {
		l.logger.Warn("Ignoring unknown spending category", logging.F(logging.FieldCategory, key))
		return record
	}
	if isNegative(text) {
		l.logger.Warn("Clamping negative spending to zero", logging.F(logging.FieldCategory, key))
		text = "0"
	}
	return spending.UpdateCategory(record, category, text)
}

// isNegative reports whether a minus sign precedes the first digit, so that
// "-200" and "$-200" are not read as 200 once sanitized.
func isNegative(text string) bool {
	idx := strings.IndexAny(text, "0123456789.")
	if idx < 0 {
		return false
	}
	return strings.Contains(text[:idx], "-")
}

func valueText(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value %v", v)
	}
}

package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"habitboard/internal/models"
	"habitboard/internal/validation"
)

// Export serializes the bundle as indented JSON with LastUpdated stamped.
// The format round-trips losslessly: stats recomputed from an
// exported-then-imported bundle are identical to stats from the original.
func Export(b models.Bundle) ([]byte, error) {
	b.LastUpdated = time.Now()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize bundle: %w", err)
	}
	return data, nil
}

// Import parses and validates a serialized bundle. Shape problems are errors,
// never coerced values; warnings (dangling references) pass through because
// the engine resolves them to zero contribution by design.
func Import(data []byte) (models.Bundle, error) {
	var b models.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return models.Bundle{}, fmt.Errorf("failed to parse bundle: %w", err)
	}

	vr := validation.ValidateBundle(b)
	if vr.HasErrors() {
		return models.Bundle{}, fmt.Errorf("invalid bundle:\n%s", vr.FormatReport())
	}

	return b, nil
}

// EncodeCode packs the bundle into a share code (base64 of the JSON form)
// that can be pasted between devices.
func EncodeCode(b models.Bundle) (string, error) {
	data, err := Export(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeCode unpacks a share code produced by EncodeCode.
func DecodeCode(code string) (models.Bundle, error) {
	data, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return models.Bundle{}, fmt.Errorf("invalid share code: %w", err)
	}
	return Import(data)
}

package proposal

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"gaugeScope/internal/model"
)

// ParseFile loads a proposal payload from root/file. It returns false, after
// logging why, when the file is not a transaction batch; callers skip it.
func ParseFile(root, file string, logger *zap.Logger) (*model.Payload, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(filepath.Join(root, file))
	if err != nil {
		logger.Warn("proposal file unreadable", zap.String("file", file), zap.Error(err))
		return nil, false
	}
	return Parse(file, data, logger)
}

// Parse validates and decodes a proposal payload.
func Parse(file string, data []byte, logger *zap.Logger) (*model.Payload, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("proposal is not proper json", zap.String("file", file), zap.Error(err))
		return nil, false
	}

	fields, ok := doc.(map[string]interface{})
	if !ok {
		logger.Warn("proposal json is not an object", zap.String("file", file))
		return nil, false
	}
	if _, ok := fields["transactions"]; !ok {
		logger.Warn("proposal json does not contain a list of transactions", zap.String("file", file))
		return nil, false
	}

	var payload model.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.Warn("proposal transactions malformed", zap.String("file", file), zap.Error(err))
		return nil, false
	}
	return &payload, true
}

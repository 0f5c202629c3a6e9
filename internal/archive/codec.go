package archive

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/Weesdome/Boardhub/internal/models"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Encode serializes a board as zstd-compressed JSON.
func Encode(b *models.Board) ([]byte, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("archive: encode board: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// Decode reverses Encode.
func Decode(data []byte) (*models.Board, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: decompress: %w", err)
	}
	var b models.Board
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("archive: decode board: %w", err)
	}
	return &b, nil
}

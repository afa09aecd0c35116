package handler

import (
	"encoding/json"

	"github.com/golang/snappy"
)

const encodingSnappy = "snappy"

func compressFrame(data []byte) []byte {
	return snappy.Encode(nil, data)
}

func decompressFrame(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}

// encodeFrame marshals v, compressing it when the stream asked for snappy
func encodeFrame(v interface{}, compressed bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if compressed {
		return compressFrame(data), nil
	}
	return data, nil
}

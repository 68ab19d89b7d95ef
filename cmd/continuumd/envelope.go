// Command envelopes: the request/reply shapes carried one-per-line over the
// NDJSON transport (spec §6). Grounded on pkg/core.FrameworkError's
// Op/Code/Message shape, flattened here into the wire-level {success,
// result|error} envelope the dispatcher boundary always returns.
package main

import (
	"encoding/base64"

	"github.com/continuum-run/continuum/pkg/core"
)

// request is one decoded line of the request stream.
type request struct {
	Command string         `json:"command"`
	Params  map[string]any `json:"params"`
}

// response is one encoded line of the reply stream.
type response struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// binaryResult is spec §6's "binary replies" shape: large results (embedding
// vectors, PCM audio) are returned as base64 alongside descriptive metadata
// rather than inline in the JSON result.
type binaryResult struct {
	Type        string `json:"type"`
	Length      int    `json:"length"`
	Dtype       string `json:"dtype"`
	Shape       []int  `json:"shape"`
	BatchSize   int    `json:"batchSize,omitempty"`
	DataBase64  string `json:"data_base64"`
	AdapterName string `json:"adapterName,omitempty"`
}

func newBinaryResult(dtype string, shape []int, batchSize int, data []byte, adapterName string) binaryResult {
	return binaryResult{
		Type:        "binary",
		Length:      len(data),
		Dtype:       dtype,
		Shape:       shape,
		BatchSize:   batchSize,
		DataBase64:  base64.StdEncoding.EncodeToString(data),
		AdapterName: adapterName,
	}
}

func successResponse(result any) response {
	return response{Success: true, Result: result}
}

func errorResponse(err error) response {
	if k, ok := core.KindOf(err); ok {
		return response{Success: false, Error: string(k) + ": " + err.Error()}
	}
	return response{Success: false, Error: err.Error()}
}

// Package iface provides contract tests for streaming agent interfaces.
// These tests validate the contract requirements for StreamingAgent implementations.
// Following TDD approach: tests should fail initially until implementation is complete.
package iface

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStreamingAgent_StreamExecute_ReturnsChannel tests that StreamExecute returns a channel.
// Contract Requirement: Channel must be non-nil if error is nil
func TestStreamingAgent_StreamExecute_ReturnsChannel(t *testing.T) {
	t.Skip("Implementation pending - contract test for T019")

	// This test will be implemented once StreamingAgent implementations exist
	// For now, it validates the contract requirement
	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	// TODO: Create a mock or real StreamingAgent instance
	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err, "StreamExecute should not return error")
	require.NotNil(t, chunkChan, "StreamExecute should return non-nil channel")
}

// TestStreamingAgent_StreamExecute_ChunksArrive tests that chunks arrive on the channel.
// Contract Requirement: At least one chunk must be sent before closing
func TestStreamingAgent_StreamExecute_ChunksArrive(t *testing.T) {
	t.Skip("Implementation pending - contract test for T019")

	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err)

	chunkCount := 0
	timeout := time.After(500 * time.Millisecond)
	for {
		select {
		case chunk, ok := <-chunkChan:
			if !ok {
				assert.Greater(t, chunkCount, 0, "At least one chunk should be sent")
				return
			}
			chunkCount++
			if chunk.Finish != nil || chunk.Err != nil {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for chunks")
		}
	}
}

// TestStreamingAgent_StreamExecute_ContextCancellation tests context cancellation handling.
// Contract Requirement: Context cancellation must be respected (stream must close on ctx.Done())
func TestStreamingAgent_StreamExecute_ContextCancellation(t *testing.T) {
	t.Skip("Implementation pending - contract test for T020")

	ctx, cancel := context.WithCancel(context.Background())
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err)

	// Cancel context immediately
	cancel()

	// Channel should close after cancellation
	timeout := time.After(1 * time.Second)
	closed := false
	for !closed {
		select {
		case _, ok := <-chunkChan:
			if !ok {
				closed = true
			}
		case <-timeout:
			t.Fatal("Timeout waiting for channel to close after cancellation")
		}
	}

	assert.True(t, closed, "Channel should close after context cancellation")
}

// TestStreamingAgent_StreamExecute_ErrorAsFinalChunk tests that errors are sent as final chunk.
// Contract Requirement: Errors are sent as final chunk with Err set
func TestStreamingAgent_StreamExecute_ErrorAsFinalChunk(t *testing.T) {
	t.Skip("Implementation pending - contract test for T021")

	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	// TODO: Configure agent to return error
	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err, "StreamExecute should not error before streaming")

	// Wait for error chunk
	timeout := time.After(5 * time.Second)
	for {
		select {
		case chunk, ok := <-chunkChan:
			if !ok {
				t.Fatal("Channel closed without error chunk")
				return
			}
			if chunk.Err != nil {
				assert.NotNil(t, chunk.Err, "Final chunk should have Err set")
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for error chunk")
		}
	}
}

// TestStreamingAgent_StreamExecute_ToolCallsInChunks tests that tool calls are included in chunks.
// Contract Requirement: Tool calls must be sent as soon as detected
func TestStreamingAgent_StreamExecute_ToolCallsInChunks(t *testing.T) {
	t.Skip("Implementation pending - contract test for T022")

	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err)

	// Collect chunks and check for tool calls
	timeout := time.After(5 * time.Second)
	foundToolCalls := false
	for {
		select {
		case chunk, ok := <-chunkChan:
			if !ok {
				if !foundToolCalls {
					// Tool calls are optional, so this is acceptable
					t.Log("No tool calls found (acceptable if not required)")
				}
				return
			}
			if len(chunk.ToolCalls) > 0 {
				foundToolCalls = true
				assert.NotEmpty(t, chunk.ToolCalls, "Chunk should contain tool calls")
			}
			if chunk.Finish != nil || chunk.Err != nil {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for chunks")
		}
	}
}

// TestStreamingAgent_StreamExecute_FinalAnswer tests that final chunk has Finish set.
// Contract Requirement: Final chunk must have either Finish set or Err set
func TestStreamingAgent_StreamExecute_FinalAnswer(t *testing.T) {
	t.Skip("Implementation pending - contract test for T023")

	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err)

	// Wait for final chunk
	timeout := time.After(5 * time.Second)
	var lastChunk AgentStreamChunk
	for {
		select {
		case chunk, ok := <-chunkChan:
			if !ok {
				// Channel closed, check last chunk
				assert.True(t, lastChunk.Finish != nil || lastChunk.Err != nil,
					"Final chunk should have Finish or Err set")
				return
			}
			lastChunk = chunk
			if chunk.Finish != nil || chunk.Err != nil {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for final chunk")
		}
	}
}

// TestStreamingAgent_StreamPlan_PlansWithStreaming tests that StreamPlan plans with streaming responses.
// Contract Requirement: StreamPlan should return channel of chunks for planning
func TestStreamingAgent_StreamPlan_PlansWithStreaming(t *testing.T) {
	t.Skip("Implementation pending - contract test for T024")

	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamPlan(ctx, []IntermediateStep{}, inputs)
	require.NoError(t, err)
	require.NotNil(t, chunkChan, "StreamPlan should return non-nil channel")

	// Verify at least one chunk arrives
	timeout := time.After(5 * time.Second)
	receivedChunk := false
	for {
		select {
		case _, ok := <-chunkChan:
			if !ok {
				assert.True(t, receivedChunk, "At least one chunk should be sent")
				return
			}
			receivedChunk = true
		case <-timeout:
			t.Fatal("Timeout waiting for planning chunks")
		}
	}
}

// TestStreamingAgent_InputValidation tests that invalid inputs return error.
// Contract Requirement: Invalid inputs return error before streaming starts
func TestStreamingAgent_InputValidation(t *testing.T) {
	t.Skip("Implementation pending - contract test for T025")

	ctx := context.Background()
	// Invalid inputs (missing required variables)
	inputs := map[string]any{}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	chunkChan, err := agent.StreamExecute(ctx, inputs)
	if err != nil {
		// Error before streaming is acceptable
		assert.Error(t, err, "Should return error for invalid inputs")
		return
	}

	// If no error, first chunk should contain error
	if chunkChan != nil {
		chunk := <-chunkChan
		assert.NotNil(t, chunk.Err, "Should send error in chunk for invalid inputs")
	}
}

// TestStreamingAgent_Performance_FirstChunkWithin200ms tests performance requirement.
// Contract Requirement: First chunk must arrive within 200ms of call
func TestStreamingAgent_Performance_FirstChunkWithin200ms(t *testing.T) {
	t.Skip("Implementation pending - contract test for T026")

	ctx := context.Background()
	inputs := map[string]any{"input": "test"}

	var agent StreamingAgent = nil
	if agent == nil {
		t.Skip("No StreamingAgent implementation available yet")
	}

	start := time.Now()
	chunkChan, err := agent.StreamExecute(ctx, inputs)
	require.NoError(t, err)

	timeout := time.After(500 * time.Millisecond)
	select {
	case <-chunkChan:
		duration := time.Since(start)
		assert.Less(t, duration, 200*time.Millisecond,
			"First chunk should arrive within 200ms")
	case <-timeout:
		t.Fatal("Timeout waiting for first chunk")
	}
}

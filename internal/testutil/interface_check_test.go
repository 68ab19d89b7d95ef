package testutil

import (
	"github.com/continuum-run/continuum/internal/testutil/mockembedder"
	"github.com/continuum-run/continuum/internal/testutil/mockstore"
	"github.com/continuum-run/continuum/internal/testutil/mockworkflow"
	"github.com/continuum-run/continuum/rag/embedding"
	"github.com/continuum-run/continuum/rag/vectorstore"
	"github.com/continuum-run/continuum/workflow"
)

// Compile-time interface checks to ensure mocks implement their target interfaces.
var (
	_ embedding.Embedder      = (*mockembedder.MockEmbedder)(nil)
	_ vectorstore.VectorStore = (*mockstore.MockVectorStore)(nil)
	_ workflow.WorkflowStore  = (*mockworkflow.MockWorkflowStore)(nil)
)

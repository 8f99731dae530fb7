package document

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

var fakePDF = []byte("%PDF-1.4 not a real document")

func TestSelectRejectsInvalidInput(t *testing.T) {
	m := NewManager()
	if _, err := m.Select(nil, "paper.pdf"); err == nil {
		t.Fatal("empty content should be rejected")
	}
	if _, err := m.Select(fakePDF, "notes.txt"); err == nil {
		t.Fatal("non-pdf name should be rejected")
	}
	oversized := make([]byte, MaxUploadBytes+1)
	if _, err := m.Select(oversized, "huge.pdf"); err == nil {
		t.Fatal("oversized content should be rejected")
	}
	require.Nil(t, m.Active())
}

func TestSelectStagesPreviewFile(t *testing.T) {
	m := NewManager()
	h, err := m.Select(fakePDF, "Paper.PDF")
	require.NoError(t, err)
	require.Equal(t, StatusUnsubmitted, h.Status)
	require.FileExists(t, h.PreviewPath())
	t.Cleanup(m.Close)

	data, err := os.ReadFile(h.PreviewPath())
	require.NoError(t, err)
	require.Equal(t, fakePDF, data)
}

func TestMarkSubmittedGuardsDoubleTrigger(t *testing.T) {
	m := NewManager()
	h, err := m.Select(fakePDF, "paper.pdf")
	require.NoError(t, err)
	t.Cleanup(m.Close)

	require.True(t, m.MarkSubmitted(h))
	require.Equal(t, StatusIngesting, h.Status)
	require.False(t, m.MarkSubmitted(h), "same handle must never be submitted twice")
}

func TestReplaceReleasesPreviewFile(t *testing.T) {
	m := NewManager()
	h, err := m.Select(fakePDF, "paper.pdf")
	require.NoError(t, err)
	path := h.PreviewPath()

	m.Replace()
	require.Nil(t, m.Active())
	require.NoFileExists(t, path)
}

func TestSupersedingSelectDiscardsStaleResults(t *testing.T) {
	m := NewManager()
	first, err := m.Select(fakePDF, "first.pdf")
	require.NoError(t, err)
	m.MarkSubmitted(first)
	firstPath := first.PreviewPath()

	second, err := m.Select(fakePDF, "second.pdf")
	require.NoError(t, err)
	t.Cleanup(m.Close)
	require.NoFileExists(t, firstPath, "superseded handle must release its preview file")
	require.NotEqual(t, first.ID, second.ID)

	require.False(t, m.SetReady(first.ID), "late result for the old handle must be discarded")
	require.False(t, m.SetFailed(first.ID, "late"), "late failure must be discarded")
	require.True(t, m.IsActive(second.ID))

	require.True(t, m.SetReady(second.ID))
	require.Equal(t, StatusReady, second.Status)
}

func TestSetFailedRecordsReason(t *testing.T) {
	m := NewManager()
	h, err := m.Select(fakePDF, "paper.pdf")
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m.MarkSubmitted(h)

	require.True(t, m.SetFailed(h.ID, "Only PDF files are allowed"))
	require.Equal(t, StatusFailed, h.Status)
	require.Equal(t, "Only PDF files are allowed", h.FailReason)
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	if _, err := ExtractText(fakePDF); err == nil {
		t.Fatal("garbage bytes should not extract")
	}
}

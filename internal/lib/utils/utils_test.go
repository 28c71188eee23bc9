package utils

import (
	"bytes"
	"testing"

	"github.com/deppfellow/issuetrack/internal/model"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, model.User{UserID: 1, Username: "jdoe", FirstName: "Jane", LastName: "Doe"}))
	require.Equal(t, "{\n\t\"user_id\": 1,\n\t\"username\": \"jdoe\",\n\t\"firstname\": \"Jane\",\n\t\"lastname\": \"Doe\"\n}\n", buf.String())
}

func TestPrintJSON_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, PrintJSON(&buf, map[string]any{"ch": make(chan int)}))
	require.Empty(t, buf.String())
}

func TestPrintJSON_NilSlice(t *testing.T) {
	var buf bytes.Buffer
	var issues []model.Issue
	require.NoError(t, PrintJSON(&buf, issues))
	require.Equal(t, "null\n", buf.String())
}

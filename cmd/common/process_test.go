package common_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mozzadell/cc-optimizer/cmd/common"
	"github.com/mozzadell/cc-optimizer/internal/clienterror"
	"github.com/mozzadell/cc-optimizer/internal/logging"
	"github.com/mozzadell/cc-optimizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSubmitter implements spending.Submitter for testing
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Optimize(ctx context.Context, payload models.NumericSpending, opts models.OptimizeOptions) (*models.RecommendationResponse, error) {
	args := m.Called(ctx, payload, opts)
	resp, _ := args.Get(0).(*models.RecommendationResponse)
	return resp, args.Error(1)
}

func TestRunOptimization_Success(t *testing.T) {
	ctx := context.Background()
	record := models.NewSpendingRecord().With(models.CategoryGroceries, "500")
	opts := models.OptimizeOptions{IsAnnual: true}
	resp := &models.RecommendationResponse{Success: true, Recommendations: []models.CardRecommendation{{CardID: "a"}}}

	sub := new(MockSubmitter)
	sub.On("Optimize", ctx, mock.MatchedBy(func(p models.NumericSpending) bool {
		return p["groceries"] == 500 && p["dining"] == 0
	}), opts).Return(resp, nil).Once()

	logger := logging.NewMockLogger()
	got, err := common.RunOptimization(ctx, sub, record, opts, logger)
	require.NoError(t, err)
	assert.Same(t, resp, got)
	assert.True(t, logger.HasEntry("INFO", "Received recommendations"))
	sub.AssertExpectations(t)

	debug := logger.GetEntriesByLevel("DEBUG")
	require.NotEmpty(t, debug)
	assert.Equal(t, "Submitting spending", debug[0].Message)
	assert.Contains(t, debug[0].Fields, logging.Field{Key: logging.FieldTotal, Value: 500.0})
}

func TestRunOptimization_NoSpendingSkipsService(t *testing.T) {
	sub := new(MockSubmitter)

	_, err := common.RunOptimization(context.Background(), sub, models.NewSpendingRecord(), models.OptimizeOptions{}, logging.NewMockLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, clienterror.ErrNoSpending)
	assert.Contains(t, err.Error(), clienterror.MsgNoSpending)
	sub.AssertNotCalled(t, "Optimize", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunOptimization_TransportError(t *testing.T) {
	sub := new(MockSubmitter)
	sub.On("Optimize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &clienterror.TransportError{Endpoint: "http://x", Cause: errors.New("refused")})

	record := models.NewSpendingRecord().With(models.CategoryGas, "40")
	_, err := common.RunOptimization(context.Background(), sub, record, models.OptimizeOptions{}, logging.NewMockLogger())

	var transportErr *clienterror.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, err.Error(), clienterror.MsgTransport)
}

func TestSelectCards(t *testing.T) {
	resp := &models.RecommendationResponse{Recommendations: []models.CardRecommendation{{CardID: "a"}, {CardID: "b"}}}
	logger := logging.NewMockLogger()

	sel := common.SelectCards([]string{"a", "zzz"}, resp, logger)
	assert.Equal(t, []string{"a"}, sel.IDs())
	assert.True(t, logger.HasEntry("WARN", "Selected card is not among the recommendations"))

	assert.True(t, common.SelectCards(nil, resp, logger).IsEmpty())
}

func TestWriteOutput(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, common.WriteOutput([]byte("hello"), "", &stdout, logging.NewMockLogger()))
	assert.Equal(t, "hello", stdout.String())

	path := filepath.Join(t.TempDir(), "nested", "report.json")
	require.NoError(t, common.WriteOutput([]byte("{}"), path, &stdout, logging.NewMockLogger()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	assert.Equal(t, "hello", stdout.String(), "file output does not touch stdout")
}

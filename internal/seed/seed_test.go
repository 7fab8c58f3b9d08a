package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/maplepath/api/internal/logger"
	"github.com/maplepath/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndustriesEmbedded(t *testing.T) {
	list, err := Industries()
	require.NoError(t, err)
	require.Len(t, list, 12)

	// ids follow file order on a fresh table, so Finance & Banking becomes id 3
	assert.Equal(t, "Information Technology", list[0].Name)
	assert.Equal(t, "Finance & Banking", list[2].Name)
	require.NotNil(t, list[2].NameFR)
	assert.Equal(t, "Finance et Banque", *list[2].NameFR)
	assert.Len(t, list[2].Tips, 5)
	assert.Contains(t, list[2].Keywords, "CFA")

	for _, in := range list {
		assert.True(t, in.IsActive, in.Name)
		assert.NotEmpty(t, in.Tips, in.Name)
		assert.NotEmpty(t, in.Keywords, in.Name)
	}
}

func TestParseIndustriesRejectsDuplicates(t *testing.T) {
	_, err := parseIndustries([]byte("industries:\n  - name: A\n  - name: A\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = parseIndustries([]byte("industries:\n  - description: nameless\n"))
	assert.ErrorContains(t, err, "no name")
}

type upserter struct {
	names []string
	failAt int
}

func (u *upserter) UpsertByName(_ context.Context, in *models.Industry) error {
	if u.failAt > 0 && len(u.names)+1 == u.failAt {
		return errors.New("db down")
	}
	u.names = append(u.names, in.Name)
	in.ID = int64(len(u.names))
	return nil
}

func TestSeedIndustries(t *testing.T) {
	u := &upserter{}
	n, err := SeedIndustries(context.Background(), u, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "Finance & Banking", u.names[2])

	u = &upserter{failAt: 4}
	n, err = SeedIndustries(context.Background(), u, logger.Discard())
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 3, n)
}

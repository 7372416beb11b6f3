package repository

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/abgdnv/foodstock/internal/food/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// FileRepositorySuite exercises FileRepository against real files in a temp dir.
type FileRepositorySuite struct {
	suite.Suite
	dir    string
	path   string
	logger *slog.Logger
	ctx    context.Context
}

func (s *FileRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTest gives every test its own empty directory.
func (s *FileRepositorySuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.path = filepath.Join(s.dir, "food.csv")
}

func TestFileRepository(t *testing.T) {
	suite.Run(t, new(FileRepositorySuite))
}

// writeData is a helper that seeds the data file.
func (s *FileRepositorySuite) writeData(content string) {
	s.T().Helper()
	require.NoError(s.T(), os.WriteFile(s.path, []byte(content), 0o644))
}

func (s *FileRepositorySuite) readData() string {
	s.T().Helper()
	data, err := os.ReadFile(s.path)
	require.NoError(s.T(), err)
	return string(data)
}

func (s *FileRepositorySuite) TestLoad() {
	s.writeData("id,name,stock,price\n1,Fried Rice,20,15000\n2,Noodles,15,12000\n")
	repo := NewFileRepository(s.path, s.logger)

	foods, err := repo.Load(s.ctx)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), []store.Food{
		{ID: 1, Name: "Fried Rice", Stock: 20, Price: 15000},
		{ID: 2, Name: "Noodles", Stock: 15, Price: 12000},
	}, foods.ExportOrdered())
}

func (s *FileRepositorySuite) TestLoad_MissingFile_Fails() {
	repo := NewFileRepository(s.path, s.logger)

	foods, err := repo.Load(s.ctx)

	require.ErrorIs(s.T(), err, fs.ErrNotExist)
	assert.Contains(s.T(), err.Error(), s.path)
	assert.Nil(s.T(), foods)
}

func (s *FileRepositorySuite) TestLoad_MissingFile_CreateIfMissing() {
	repo := NewFileRepository(s.path, s.logger, WithCreateIfMissing(true))

	foods, err := repo.Load(s.ctx)

	require.NoError(s.T(), err)
	assert.Zero(s.T(), foods.Len())
	_, statErr := os.Stat(s.path)
	assert.ErrorIs(s.T(), statErr, fs.ErrNotExist, "Load must not create the file")
}

func (s *FileRepositorySuite) TestLoad_DirectoryIsNotTreatedAsMissing() {
	repo := NewFileRepository(s.dir, s.logger, WithCreateIfMissing(true))

	_, err := repo.Load(s.ctx)

	require.Error(s.T(), err)
}

func (s *FileRepositorySuite) TestLoad_VerboseDiagnostics() {
	s.writeData("id,name,stock,price\n1,Soup,10,5000\nabc,Soup,10,5000\n7,,10,5000\n")
	var diag bytes.Buffer
	repo := NewFileRepository(s.path, s.logger, WithDiagnostics(&diag))

	foods, err := repo.Load(s.ctx)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, foods.Len())
	out := diag.String()
	assert.Contains(s.T(), out, "Error on line number 1: invalid number: id must be an integer, got \"id\"\n > \"id,name,stock,price\"\n")
	assert.Contains(s.T(), out, "Error on line number 3: invalid number: id must be an integer, got \"abc\"\n > \"abc,Soup,10,5000\"\n")
	assert.Contains(s.T(), out, "Error on line number 4: missing field: name\n > \"7,,10,5000\"\n")
}

func (s *FileRepositorySuite) TestLoad_QuietWithoutDiagnostics() {
	s.writeData("abc,Soup,10,5000\n")
	repo := NewFileRepository(s.path, s.logger, WithDiagnostics(nil))

	foods, err := repo.Load(s.ctx)

	require.NoError(s.T(), err)
	assert.Zero(s.T(), foods.Len())
}

func (s *FileRepositorySuite) TestSave_TruncatesAndWritesHeader() {
	s.writeData("id,name,stock,price\n1,Soup,10,5000\n2,Rice,1,1\n3,Long Forgotten Dish,99,99999\n")
	repo := NewFileRepository(s.path, s.logger)
	foods := store.NewInMemoryStore()
	foods.Add(store.Food{ID: 1, Name: "Soup", Stock: 9, Price: 5000})

	err := repo.Save(s.ctx, foods)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "id,name,stock,price\n1,Soup,9,5000\n", s.readData())
}

func (s *FileRepositorySuite) TestSave_CreatesFile() {
	repo := NewFileRepository(s.path, s.logger)
	foods := store.NewInMemoryStore()
	foods.Add(store.Food{ID: 1, Name: "Soup", Stock: 10, Price: 5000})

	require.NoError(s.T(), repo.Save(s.ctx, foods))

	assert.Equal(s.T(), "id,name,stock,price\n1,Soup,10,5000\n", s.readData())
}

func (s *FileRepositorySuite) TestSave_UnwritablePath() {
	repo := NewFileRepository(filepath.Join(s.dir, "no-such-dir", "food.csv"), s.logger)

	err := repo.Save(s.ctx, store.NewInMemoryStore())

	require.ErrorIs(s.T(), err, fs.ErrNotExist)
	assert.Contains(s.T(), err.Error(), "save food file")
}

func (s *FileRepositorySuite) TestSaveThenLoad() {
	repo := NewFileRepository(s.path, s.logger)
	foods := store.NewInMemoryStore()
	want := []store.Food{
		{ID: 1, Name: "Fried Rice", Stock: 20, Price: 15000},
		{ID: 4, Name: "Es Teh", Stock: 0, Price: 3000},
	}
	for _, f := range want {
		foods.Add(f)
	}

	require.NoError(s.T(), repo.Save(s.ctx, foods))
	loaded, err := repo.Load(s.ctx)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), want, loaded.ExportOrdered())
}

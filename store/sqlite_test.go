package store

import (
	"path/filepath"
	"testing"

	"github.com/etnz/bank"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SQLiteTestSuite runs the gateway against a fresh database per test.
type SQLiteTestSuite struct {
	suite.Suite
	db *SQLite
}

func (suite *SQLiteTestSuite) SetupTest() {
	db, err := NewSQLite(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
}

func (suite *SQLiteTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *SQLiteTestSuite) TestEmpty() {
	r, err := suite.db.LoadAllUsers()
	suite.Require().NoError(err)
	suite.Empty(r)
}

func (suite *SQLiteTestSuite) TestRoundTrip() {
	want := sampleRoster(suite.T())
	suite.Require().NoError(suite.db.SaveAllUsers(want))

	got, err := suite.db.LoadAllUsers()
	suite.Require().NoError(err)
	requireSameRoster(suite.T(), want, got)
}

func (suite *SQLiteTestSuite) TestSaveReplaces() {
	suite.Require().NoError(suite.db.SaveAllUsers(sampleRoster(suite.T())))
	suite.Require().NoError(suite.db.SaveAllUsers(bank.Roster{bank.NewUser(5, "Grace", "Hopper")}))

	got, err := suite.db.LoadAllUsers()
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(5, got[0].ID())
	suite.Empty(got[0].Accounts())
}

func (suite *SQLiteTestSuite) TestDuplicateUserRollsBack() {
	suite.Require().NoError(suite.db.SaveAllUsers(sampleRoster(suite.T())))

	dup := bank.Roster{bank.NewUser(1, "Ada", "Lovelace"), bank.NewUser(1, "Ada", "Again")}
	suite.Error(suite.db.SaveAllUsers(dup))

	// The failed save left the previous content alone.
	got, err := suite.db.LoadAllUsers()
	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func TestSQLite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.db")
	db, err := NewSQLite(path)
	require.NoError(t, err)
	want := sampleRoster(t)
	require.NoError(t, db.SaveAllUsers(want))
	require.NoError(t, db.Close())

	db, err = NewSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.LoadAllUsers()
	require.NoError(t, err)
	requireSameRoster(t, want, got)
}

func TestSQLite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "bank.db")
	gw, err := Open(KindSQLite, path)
	require.NoError(t, err)
	defer gw.(*SQLite).Close()

	r, err := gw.LoadAllUsers()
	require.NoError(t, err)
	require.Empty(t, r)
	require.FileExists(t, path)
}

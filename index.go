package plink

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

// Index is a SQLite index of a plink set, mapping marker and sample
// identifiers to their rows without reading the metadata files.
type Index struct {
	DB       *sqlx.DB
	Metadata *IndexMetadata
}

// IndexMetadata conforms to the single row of the SQLite table "Metadata".
type IndexMetadata struct {
	Filename          string
	NSamples          int  `db:"n_samples"`
	NMarkers          int  `db:"n_markers"`
	IndexCreationTime Time `db:"index_creation_time"`
}

// MarkerIndex conforms to the rows of the SQLite table "Marker".
type MarkerIndex struct {
	RSID       string `db:"rsid"`
	Chromosome int
	CM         float64 `db:"cm"`
	BP         uint64  `db:"bp"`
	Allele0    string
	Allele1    string
	Row        int
}

// SampleIndex conforms to the rows of the SQLite table "Sample".
type SampleIndex struct {
	IID        string `db:"iid"`
	FID        string `db:"fid"`
	Population string
	Region     string
	Row        int
}

const indexSchema = `
CREATE TABLE Metadata (
	filename TEXT NOT NULL,
	n_samples INTEGER NOT NULL,
	n_markers INTEGER NOT NULL,
	index_creation_time INTEGER NOT NULL
);
CREATE TABLE Marker (
	rsid TEXT NOT NULL,
	chromosome INTEGER NOT NULL,
	cm REAL NOT NULL,
	bp INTEGER NOT NULL,
	allele0 TEXT NOT NULL,
	allele1 TEXT NOT NULL,
	"row" INTEGER NOT NULL
);
CREATE TABLE Sample (
	iid TEXT NOT NULL,
	fid TEXT NOT NULL,
	population TEXT NOT NULL,
	region TEXT NOT NULL,
	"row" INTEGER NOT NULL
);
CREATE INDEX marker_rsid ON Marker (rsid);
CREATE INDEX marker_chromosome ON Marker (chromosome);
CREATE INDEX sample_iid ON Sample (iid);
`

func indexURI(path string) string {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + ExpandHome(path)
	}

	return path
}

// OpenIndex opens an index created by WriteIndex.
func OpenIndex(path string) (*Index, error) {
	db, err := connectIndex(indexURI(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	idx := &Index{
		DB:       db,
		Metadata: &IndexMetadata{},
	}

	if err := idx.DB.Get(idx.Metadata, "SELECT * FROM Metadata LIMIT 1"); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return idx, nil
}

func (idx *Index) Close() error {
	return idx.DB.Close()
}

// WriteIndex creates a new SQLite index of ds at path. Markers and samples are
// inserted within a single transaction.
func WriteIndex(path string, ds *Dataset) error {
	db, err := connectIndex(indexURI(path))
	if err != nil {
		return pfx.Err(err)
	}
	defer db.Close()

	if _, err := db.Exec(indexSchema); err != nil {
		return pfx.Err(err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO Metadata (filename, n_samples, n_markers, index_creation_time) VALUES (?, ?, ?, ?)",
		ds.Name(), ds.NSamples(), ds.NSites(), time.Now().Unix()); err != nil {
		return pfx.Err(err)
	}

	markerStmt, err := tx.Preparex(`INSERT INTO Marker (rsid, chromosome, cm, bp, allele0, allele1, "row") VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return pfx.Err(err)
	}
	defer markerStmt.Close()

	for i, m := range ds.Markers.Rows {
		if _, err := markerStmt.Exec(m.ID, m.Chromosome, m.CM, int64(m.BP), m.Allele0, m.Allele1, i); err != nil {
			return pfx.Err(err)
		}
	}

	sampleStmt, err := tx.Preparex(`INSERT INTO Sample (iid, fid, population, region, "row") VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return pfx.Err(err)
	}
	defer sampleStmt.Close()

	for i, s := range ds.Samples.Rows {
		h := 2 * i
		if _, err := sampleStmt.Exec(s.IndividualID, s.FamilyID, ds.HaplotypePopulation(h), ds.HaplotypeRegion(h), i); err != nil {
			return pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// MarkerRow returns the row of the marker with the given ID. When an ID
// repeats, the last row wins, as with Markers.Index.
func (idx *Index) MarkerRow(id string) (int, error) {
	var row int
	err := idx.DB.Get(&row, `SELECT "row" FROM Marker WHERE rsid = ? ORDER BY "row" DESC LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &UnknownIdentifierError{Kind: "marker", ID: id}
	} else if err != nil {
		return 0, pfx.Err(err)
	}

	return row, nil
}

// SampleRow returns the row of the sample with the given individual ID.
func (idx *Index) SampleRow(id string) (int, error) {
	var row int
	err := idx.DB.Get(&row, `SELECT "row" FROM Sample WHERE iid = ? ORDER BY "row" DESC LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &UnknownIdentifierError{Kind: "sample", ID: id}
	} else if err != nil {
		return 0, pfx.Err(err)
	}

	return row, nil
}

// Markers returns every marker on a chromosome, in file order.
func (idx *Index) Markers(chromosome int) ([]MarkerIndex, error) {
	out := make([]MarkerIndex, 0)
	if err := idx.DB.Select(&out, `SELECT * FROM Marker WHERE chromosome = ? ORDER BY "row"`, chromosome); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Sample returns the indexed row of the sample with the given individual ID.
func (idx *Index) Sample(id string) (SampleIndex, error) {
	var out SampleIndex
	err := idx.DB.Get(&out, `SELECT * FROM Sample WHERE iid = ? ORDER BY "row" DESC LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return out, &UnknownIdentifierError{Kind: "sample", ID: id}
	} else if err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

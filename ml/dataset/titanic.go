// Package dataset loads the Titanic passenger manifest and prepares it for
// classification: descriptive survival summaries and a numeric design
// matrix with the usual encodings (sex as an indicator, embarkation port
// one-hot, median imputation for missing ages and fares).
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/datalab-go/datalab/ml"
)

var (
	// ErrMissingColumn indicates a header without a required column.
	ErrMissingColumn = errors.New("dataset: required column missing")

	// ErrBadRecord indicates an unparseable field.
	ErrBadRecord = errors.New("dataset: malformed record")

	// ErrNoData indicates a file with a header but no rows.
	ErrNoData = errors.New("dataset: no passenger rows")
)

// Passenger is one manifest row. Age and Fare are NaN when the source field
// is empty; Embarked is "" when unknown.
type Passenger struct {
	ID       int
	Survived bool
	Pclass   int
	Name     string
	Sex      string
	Age      float64
	SibSp    int
	Parch    int
	Fare     float64
	Embarked string
}

var requiredColumns = []string{
	"PassengerId", "Survived", "Pclass", "Name", "Sex",
	"Age", "SibSp", "Parch", "Fare", "Embarked",
}

// Load reads a Titanic-format CSV file.
func Load(path string) ([]Passenger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses Titanic-format CSV from r. The first record must be a
// header naming at least the standard columns; extra columns are ignored.
func LoadReader(r io.Reader) ([]Passenger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var passengers []Passenger
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", row, err)
		}
		p, err := parsePassenger(record, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		passengers = append(passengers, p)
	}
	if len(passengers) == 0 {
		return nil, ErrNoData
	}
	return passengers, nil
}

func parsePassenger(record []string, col map[string]int) (Passenger, error) {
	var p Passenger
	var err error

	field := func(name string) string { return strings.TrimSpace(record[col[name]]) }

	if p.ID, err = strconv.Atoi(field("PassengerId")); err != nil {
		return p, fmt.Errorf("%w: PassengerId %q", ErrBadRecord, field("PassengerId"))
	}
	switch field("Survived") {
	case "0":
		p.Survived = false
	case "1":
		p.Survived = true
	default:
		return p, fmt.Errorf("%w: Survived %q", ErrBadRecord, field("Survived"))
	}
	if p.Pclass, err = strconv.Atoi(field("Pclass")); err != nil {
		return p, fmt.Errorf("%w: Pclass %q", ErrBadRecord, field("Pclass"))
	}
	p.Name = field("Name")
	p.Sex = strings.ToLower(field("Sex"))
	if p.Age, err = optionalFloat(field("Age")); err != nil {
		return p, fmt.Errorf("%w: Age %q", ErrBadRecord, field("Age"))
	}
	if p.SibSp, err = strconv.Atoi(field("SibSp")); err != nil {
		return p, fmt.Errorf("%w: SibSp %q", ErrBadRecord, field("SibSp"))
	}
	if p.Parch, err = strconv.Atoi(field("Parch")); err != nil {
		return p, fmt.Errorf("%w: Parch %q", ErrBadRecord, field("Parch"))
	}
	if p.Fare, err = optionalFloat(field("Fare")); err != nil {
		return p, fmt.Errorf("%w: Fare %q", ErrBadRecord, field("Fare"))
	}
	p.Embarked = strings.ToUpper(field("Embarked"))
	return p, nil
}

func optionalFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Summary holds the descriptive statistics the analysis starts from.
type Summary struct {
	Total        int
	Survived     int
	SurvivalRate float64
	BySex        map[string]float64 // survival rate per sex
	ByClass      map[int]float64    // survival rate per passenger class
}

// Summarize computes survival rates overall and by sex and class.
func Summarize(passengers []Passenger) Summary {
	s := Summary{
		Total:   len(passengers),
		BySex:   make(map[string]float64),
		ByClass: make(map[int]float64),
	}
	sexTotal := make(map[string]int)
	sexAlive := make(map[string]int)
	classTotal := make(map[int]int)
	classAlive := make(map[int]int)
	for _, p := range passengers {
		sexTotal[p.Sex]++
		classTotal[p.Pclass]++
		if p.Survived {
			s.Survived++
			sexAlive[p.Sex]++
			classAlive[p.Pclass]++
		}
	}
	if s.Total > 0 {
		s.SurvivalRate = float64(s.Survived) / float64(s.Total)
	}
	for sex, n := range sexTotal {
		s.BySex[sex] = float64(sexAlive[sex]) / float64(n)
	}
	for class, n := range classTotal {
		s.ByClass[class] = float64(classAlive[class]) / float64(n)
	}
	return s
}

// FeatureNames is the column order produced by Features.
var FeatureNames = []string{
	"Pclass", "IsMale", "Age", "SibSp", "Parch", "Fare", "EmbarkedC", "EmbarkedQ",
}

// Features builds the design matrix and label vector. Missing ages and
// fares are imputed with the column median over known values; embarkation
// is one-hot with Southampton (the most common port) as the baseline, and
// unknown ports fall into the baseline.
func Features(passengers []Passenger) (*mat.Dense, []bool, error) {
	if len(passengers) == 0 {
		return nil, nil, ErrNoData
	}

	ageMedian := knownMedian(passengers, func(p Passenger) float64 { return p.Age })
	fareMedian := knownMedian(passengers, func(p Passenger) float64 { return p.Fare })

	X := mat.NewDense(len(passengers), len(FeatureNames), nil)
	y := make([]bool, len(passengers))
	for i, p := range passengers {
		age := p.Age
		if math.IsNaN(age) {
			age = ageMedian
		}
		fare := p.Fare
		if math.IsNaN(fare) {
			fare = fareMedian
		}
		isMale := 0.0
		if p.Sex == "male" {
			isMale = 1
		}
		embC, embQ := 0.0, 0.0
		switch p.Embarked {
		case "C":
			embC = 1
		case "Q":
			embQ = 1
		}
		X.SetRow(i, []float64{
			float64(p.Pclass), isMale, age, float64(p.SibSp), float64(p.Parch), fare, embC, embQ,
		})
		y[i] = p.Survived
	}
	return X, y, nil
}

// knownMedian is the median of the non-NaN values of one column; 0 when
// every value is missing.
func knownMedian(passengers []Passenger, get func(Passenger) float64) float64 {
	var known []float64
	for _, p := range passengers {
		if v := get(p); !math.IsNaN(v) {
			known = append(known, v)
		}
	}
	if len(known) == 0 {
		return 0
	}
	return ml.Percentile(known, 50)
}

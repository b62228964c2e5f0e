package ingest

import (
	"math"
	"math/rand"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// TrainTestSplit shuffles the rows of df with a seeded source and splits
// them into train and test sets. The test set gets ceil(n*testRatio) rows.
// The same seed always yields the same split.
func TrainTestSplit(df dataframe.DataFrame, testRatio float64, seed int64) (train, test dataframe.DataFrame, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return train, test, errors.Errorf("test ratio %v must be between 0 and 1", testRatio)
	}
	n := df.Nrow()
	nTest := int(math.Ceil(float64(n) * testRatio))
	if nTest >= n {
		return train, test, errors.Errorf("cannot split %d rows with test ratio %v", n, testRatio)
	}
	indices := rand.New(rand.NewSource(seed)).Perm(n)

	test = df.Subset(indices[:nTest])
	if test.Err != nil {
		return train, test, errors.Wrap(test.Err, "select test rows")
	}
	train = df.Subset(indices[nTest:])
	if train.Err != nil {
		return train, test, errors.Wrap(train.Err, "select train rows")
	}
	return train, test, nil
}

package mofa2

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// synthSamples is the sample count of the synthetic normal matrix used by
// the orthogonal initialization.
const synthSamples = 9999

// pcaLoadings will fit a whitened PCA with k components on X (samples x
// features) and return the loadings as a features x k matrix. When k exceeds
// the number of singular vectors the trailing columns are filled with
// standard normal draws so the result always has exactly k columns.
func pcaLoadings(X *mat.Dense, k int, src rand.Source) (*mat.Dense, error) {
	n, f := X.Dims()
	if n == 0 || f == 0 {
		return nil, fmt.Errorf("%w: empty matrix for PCA", ErrShapeMismatch)
	}

	// Center each feature column.
	C := mat.NewDense(n, f, nil)
	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, X)
		mu := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			C.Set(i, j, col[i]-mu)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(C, mat.SVDThin); !ok {
		return nil, fmt.Errorf("mofa2: SVD failed to factorize %dx%d matrix", n, f)
	}
	var v mat.Dense
	svd.VTo(&v)
	_, rank := v.Dims()

	load := mat.NewDense(f, k, nil)
	avail := k
	if rank < avail {
		avail = rank
	}
	for j := 0; j < avail; j++ {
		for i := 0; i < f; i++ {
			load.Set(i, j, v.At(i, j))
		}
	}
	if avail < k {
		pad := RandNormMat(f, k-avail, src)
		for j := avail; j < k; j++ {
			for i := 0; i < f; i++ {
				load.Set(i, j, pad.At(i, j-avail))
			}
		}
	}
	return load, nil
}

// orthogonalMean will produce a near-orthogonal dim x k seed by fitting PCA
// on a large synthetic standard-normal sample, independent of the data.
func orthogonalMean(dim, k int, src rand.Source) (*mat.Dense, error) {
	synth := RandNormMat(synthSamples, dim, src)
	return pcaLoadings(synth, k, src)
}

// stackViewsT will stack the transposed views row-wise into a (sum D) x N
// matrix, the fit input of the PCA initialization of Z.
func stackViewsT(data []*mat.Dense) *mat.Dense {
	total := 0
	for _, d := range data {
		_, c := d.Dims()
		total += c
	}
	n, _ := data[0].Dims()
	out := mat.NewDense(total, n, nil)
	row := 0
	for _, d := range data {
		nr, nc := d.Dims()
		for j := 0; j < nc; j++ {
			for i := 0; i < nr; i++ {
				out.Set(row, i, d.At(i, j))
			}
			row++
		}
	}
	return out
}

package match

import "fmt"

// exact aligns r with a longest-common-subsequence dynamic programme.
//
// Algorithm Outline:
//  1. Let n = lenA, m = lenB. Allocate a flat (n+1)×(m+1) table L where
//     L[i][j] is the LCS length of A[i:] and B[j:] (suffix form, so the
//     walk below can run forwards).
//  2. Initialize row n and column m to 0.
//  3. For i = n-1..0, j = m-1..0:
//     L[i][j] = L[i+1][j+1] + 1          if A[i] == B[j]
//     L[i][j] = max(L[i+1][j], L[i][j+1]) otherwise
//  4. Walk rows from (0,0): pair A[i] with the earliest B[k], k >= j, that
//     keeps the optimum; when there is none A[i] is deleted. This yields a
//     maximum alignment whose matches have the smallest A index, then the
//     smallest B index.
//
// Complexity: O(n·m) time and memory, bounded by MaxCells.
//
// If checkBudget is set an oversized region is an error; callers that have
// already checked the budget pass false.
func (m *matcher[S]) exact(r region, checkBudget bool) error {
	n, w := r.lenA(), r.lenB()
	if n == 0 || w == 0 {
		return nil
	}
	if checkBudget && n*w > m.opts.MaxCells {
		return fmt.Errorf("%w: %d×%d > %d", ErrRegionTooLarge, n, w, m.opts.MaxCells)
	}

	stride := w + 1
	dp := make([]int32, (n+1)*stride)
	for i := n - 1; i >= 0; i-- {
		row, next := i*stride, (i+1)*stride
		for j := w - 1; j >= 0; j-- {
			if m.eq(r.beginA+i, r.beginB+j) {
				dp[row+j] = dp[next+j+1] + 1
			} else {
				dp[row+j] = max(dp[next+j], dp[row+j+1])
			}
		}
	}
	m.stats.ExactRegions++
	m.stats.Cells += n * w

	i, j := 0, 0
	for i < n && j < w && dp[i*stride+j] > 0 {
		if k := m.earliestColumn(r, dp, stride, i, j); k >= 0 {
			m.link(r.beginA+i, r.beginB+k)
			i, j = i+1, k+1

			continue
		}
		i++
	}

	return nil
}

// earliestColumn returns the smallest k >= j such that pairing A[i] with B[k]
// keeps the alignment maximal, or -1 when row i cannot be matched.
func (m *matcher[S]) earliestColumn(r region, dp []int32, stride, i, j int) int {
	cur := dp[i*stride+j]
	next := (i + 1) * stride
	for k := j; k < stride-1; k++ {
		if dp[next+k+1]+1 < cur {
			// later columns only shrink the remaining optimum
			return -1
		}
		if dp[next+k+1]+1 == cur && m.eq(r.beginA+i, r.beginB+k) {
			return k
		}
	}

	return -1
}

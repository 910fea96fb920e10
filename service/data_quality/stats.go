package data_quality

import (
	"math"
	"sort"
)

// mean 算术平均值，空切片返回NaN
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev 样本标准差（分母n-1），少于两个值时返回NaN
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// median 中位数，偶数个时取中间两个值的平均，空切片返回NaN
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// zScore 标准分，标准差为NaN或0时结果为NaN或±Inf
func zScore(value, m, std float64) float64 {
	return (value - m) / std
}

// isOutlier |z| > 3 或薪资为负即为异常；NaN与任何值比较均为false
func isOutlier(value, m, std float64) bool {
	return math.Abs(zScore(value, m, std)) > zScoreThreshold || value < 0
}

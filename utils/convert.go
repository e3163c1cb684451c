// Package utils
package utils

import (
	"strconv"
)

func StrToUint64(data string) uint64 {
	i, _ := strconv.ParseUint(data, 10, 64)
	return i
}

func StrToFloat64(data string) float64 {
	f, _ := strconv.ParseFloat(data, 64)
	return f
}

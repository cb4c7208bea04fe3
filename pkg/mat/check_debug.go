//go:build draftdebug

package mat

import "fmt"

func checkIndex(kind string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("mat: %s index %d out of range [0, %d)", kind, i, n))
	}
}

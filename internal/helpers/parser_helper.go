package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// FormInt reads the named form field as an int. A missing, blank or
// unparseable field yields nil so callers can tell "absent" from zero.
func FormInt(c *gin.Context, field string) *int {
	raw := c.PostForm(field)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// FormFloat reads the named form field as a float64, nil when absent or
// unparseable.
func FormFloat(c *gin.Context, field string) *float64 {
	raw := c.PostForm(field)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

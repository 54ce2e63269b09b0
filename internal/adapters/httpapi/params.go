package httpapi

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hostelcore/internal/query"
)

// paging reads page and limit, defaulting to 1 and 10. Range checks happen
// in the paginator.
func paging(c *gin.Context) (page, limit int, field string, err error) {
	page, err = intQuery(c, "page", query.DefaultPage)
	if err != nil {
		return 0, 0, "page", err
	}
	limit, err = intQuery(c, "limit", query.DefaultLimit)
	if err != nil {
		return 0, 0, "limit", err
	}
	return page, limit, "", nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", raw)
	}
	return n, nil
}

// bindFilter binds query parameters into a filter struct and splits
// comma-separated values of slice fields, so ?ids=a,b and ?ids=a&ids=b agree.
func bindFilter[F any](c *gin.Context) (F, error) {
	var f F
	if err := c.ShouldBindQuery(&f); err != nil {
		return f, err
	}
	splitLists(reflect.ValueOf(&f).Elem())
	return f, nil
}

func splitLists(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.String || !field.CanSet() {
			continue
		}
		out := reflect.MakeSlice(field.Type(), 0, field.Len())
		for j := 0; j < field.Len(); j++ {
			for _, part := range strings.Split(field.Index(j).String(), ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = reflect.Append(out, reflect.ValueOf(part).Convert(field.Type().Elem()))
				}
			}
		}
		field.Set(out)
	}
}

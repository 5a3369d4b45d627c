package handlers

import (
	"reflect"
)

// DetermineListRange prepares a 'list' of non-db-backed resources. Pages are
// zero based.
func DetermineListRange(obj interface{}, page int, size int) (list []interface{}, total int) {
	items := reflect.ValueOf(obj)
	total = items.Len()
	low := page * size
	high := low + size
	if low < 0 || low >= total {
		return list, total
	}
	if high > total {
		high = total
	}
	for i := low; i < high; i++ {
		list = append(list, items.Index(i).Interface())
	}

	return list, total
}

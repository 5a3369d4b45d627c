package api

// PagingMeta carries the paging window and total match count of a list query.
// Page is zero based.
type PagingMeta struct {
	Page  int
	Size  int
	Total int
}

// Package dataprovider maps CRUD operations onto fetch requests.
//
// Simple binds two Fetchers to a base path: FetchOne decodes the JSON body
// and FetchMany additionally reads the total count header. Provider builds
// on Simple and exposes list, get, create, update and delete operations
// with filtering, sorting and pagination encoded as query parameters:
//
//	GET  users?role=admin&sort-field=name&sort-order=ASC&range-start=0&range-end=9
//	GET  users/5
//	GET  users?ids=1,2,3
//	POST users            {"name":"Ada"}
//	PATCH users/5         {"name":"Ada L."}
//	PATCH users?ids=1,2   {"data":{"role":"ops"}}
//	DELETE users/5
//	DELETE users?ids=1,2
//
// # Usage
//
//	p, err := dataprovider.New("/", "", dataprovider.WithHandles(fetch.WithTransport(adapter)))
//	list, err := p.GetList(ctx, "users", dataprovider.ListParams{
//	    Sort:       dataprovider.Sort{Field: "name", Order: dataprovider.OrderAsc},
//	    Pagination: dataprovider.Pagination{Page: 1, PerPage: 10},
//	})
package dataprovider

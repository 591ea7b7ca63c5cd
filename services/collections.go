package services

import (
	"log"

	"exale/store"
)

const (
	CollectionTasks     = "tasks"
	CollectionClients   = "clients"
	CollectionContacts  = "internal_contacts"
	CollectionUsers     = "users"
	CollectionSchedules = "schedules"
	CollectionEmployees = "employees"
)

// decodeAll decodes every document that fits T. Records other clients wrote
// with the wrong field types are logged and left out of the list.
func decodeAll[T any](collection string, docs []store.Doc, withID func(*T, string)) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := store.Decode(d, &v); err != nil {
			log.Printf("warning: skipping %s/%s: %v", collection, d.ID, err)
			continue
		}
		withID(&v, d.ID)
		out = append(out, v)
	}
	return out
}

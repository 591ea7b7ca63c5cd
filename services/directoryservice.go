package services

import (
	"context"
	"strings"

	"exale/model"
	"exale/store"
)

// DirectoryService manages the partner (client) and internal contact lists.
type DirectoryService struct {
	store store.Store
}

func NewDirectoryService(s store.Store) *DirectoryService {
	return &DirectoryService{store: s}
}

func ClientsQuery() store.Query {
	return store.Query{Collection: CollectionClients, OrderBy: "timestamp", Direction: store.Desc}
}

func ContactsQuery() store.Query {
	return store.Query{Collection: CollectionContacts, OrderBy: "timestamp", Direction: store.Desc}
}

func DecodeClients(docs []store.Doc) []model.Client {
	return decodeAll(CollectionClients, docs, func(c *model.Client, id string) { c.ID = id })
}

func DecodeContacts(docs []store.Doc) []model.Contact {
	return decodeAll(CollectionContacts, docs, func(c *model.Contact, id string) { c.ID = id })
}

func (d *DirectoryService) ListClients(ctx context.Context) ([]model.Client, error) {
	docs, err := d.store.Query(ctx, ClientsQuery())
	if err != nil {
		return nil, err
	}
	return DecodeClients(docs), nil
}

func (d *DirectoryService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	docs, err := d.store.Query(ctx, ContactsQuery())
	if err != nil {
		return nil, err
	}
	return DecodeContacts(docs), nil
}

func (d *DirectoryService) CreateClient(ctx context.Context, s model.Session, c model.Client) (string, error) {
	if err := requireSignedIn(s); err != nil {
		return "", err
	}
	c.Name, c.Email = strings.TrimSpace(c.Name), strings.TrimSpace(c.Email)
	if c.Name == "" || c.Email == "" {
		return "", invalid("Company Name and Email are required.")
	}
	return d.store.Add(ctx, CollectionClients, map[string]interface{}{
		"name":      c.Name,
		"email":     c.Email,
		"industry":  strings.TrimSpace(c.Industry),
		"timestamp": store.ServerTimestamp,
	})
}

func (d *DirectoryService) CreateContact(ctx context.Context, s model.Session, c model.Contact) (string, error) {
	if err := requireSignedIn(s); err != nil {
		return "", err
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return "", invalid("Name is required.")
	}
	return d.store.Add(ctx, CollectionContacts, map[string]interface{}{
		"name":      c.Name,
		"phone":     strings.TrimSpace(c.Phone),
		"email":     strings.TrimSpace(c.Email),
		"tag":       strings.TrimSpace(c.Tag),
		"timestamp": store.ServerTimestamp,
	})
}

func (d *DirectoryService) DeleteClient(ctx context.Context, s model.Session, id string) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	return d.store.Delete(ctx, CollectionClients, id)
}

func (d *DirectoryService) DeleteContact(ctx context.Context, s model.Session, id string) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	return d.store.Delete(ctx, CollectionContacts, id)
}

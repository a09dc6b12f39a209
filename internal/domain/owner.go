package domain

import "fmt"

// Owner addresses one header-field list: an item's header row or the
// personal-info block of a document (ID is then the document id).
type Owner struct {
	Kind OwnerKind
	ID   string
}

func ItemOwner(itemID string) Owner { return Owner{Kind: OwnerItem, ID: itemID} }

func BasicOwner(documentID string) Owner { return Owner{Kind: OwnerBasic, ID: documentID} }

func (o Owner) Valid() bool {
	return (o.Kind == OwnerItem || o.Kind == OwnerBasic) && o.ID != ""
}

func (o Owner) String() string {
	return fmt.Sprintf("%s:%s", o.Kind, o.ID)
}

package sqlite

// Schema DDL. The database is rebuilt from contacts.jsonl on every Attach,
// so there are no migrations.
const (
	createContacts = `CREATE TABLE contacts (
    contact_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL
);`

	createPhones = `CREATE TABLE phones (
    contact_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (contact_id, position),
    UNIQUE (contact_id, number),
    FOREIGN KEY (contact_id) REFERENCES contacts(contact_id) ON DELETE CASCADE
);`
)

// Index DDL for lookups.
const (
	idxContactsPosition = `CREATE INDEX idx_contacts_position ON contacts(position);`
	idxPhonesNumber     = `CREATE INDEX idx_phones_number ON phones(number);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createPhones,
	idxContactsPosition,
	idxPhonesNumber,
}

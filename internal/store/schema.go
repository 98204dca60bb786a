package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS residents (
    id                   TEXT PRIMARY KEY,
    first_name           TEXT NOT NULL,
    middle_name          TEXT NOT NULL DEFAULT '',
    last_name            TEXT NOT NULL,
    suffix               TEXT NOT NULL DEFAULT '',
    sex                  TEXT NOT NULL DEFAULT '',
    birthdate            TEXT,
    civil_status         TEXT NOT NULL DEFAULT '',
    address              TEXT NOT NULL DEFAULT '',
    contact              TEXT NOT NULL DEFAULT '',
    registered_at        TEXT NOT NULL,
    archived             INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS businesses (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    owner_name           TEXT NOT NULL DEFAULT '',
    address              TEXT NOT NULL DEFAULT '',
    category             TEXT NOT NULL DEFAULT '',
    registered_at        TEXT NOT NULL,
    archived             INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
    id                   TEXT PRIMARY KEY,
    kind                 INTEGER NOT NULL,
    owner_id             TEXT NOT NULL,
    issued_at            TEXT NOT NULL,
    purpose              TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS settings (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_kind_issued ON records(kind, issued_at);
CREATE INDEX IF NOT EXISTS idx_records_owner ON records(owner_id);
CREATE INDEX IF NOT EXISTS idx_residents_name ON residents(last_name, first_name);
`

// Package db holds the SQL schema applied by cmd/setupdb. The tables mirror
// the structs in internal/domain; column order matches the scan order used by
// the repositories in internal/adapter/repo.
package db

// Schema creates all tables and indexes. Statements are idempotent so the
// setup tool can be re-run against an existing database.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id                UUID PRIMARY KEY,
    name              TEXT NOT NULL,
    email             TEXT NOT NULL UNIQUE,
    password_hash     TEXT NOT NULL,
    role              TEXT NOT NULL,
    verified          BOOLEAN NOT NULL DEFAULT FALSE,
    gov_id            TEXT NOT NULL DEFAULT '',
    organization_type TEXT NOT NULL DEFAULT '',
    location          TEXT NOT NULL DEFAULT '',
    description       TEXT NOT NULL DEFAULT '',
    age               INTEGER,
    state             TEXT NOT NULL DEFAULT '',
    availability      TEXT NOT NULL DEFAULT '',
    skills            TEXT NOT NULL DEFAULT '',
    phone             TEXT NOT NULL DEFAULT '',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS campaigns (
    id            UUID PRIMARY KEY,
    title         TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    target_amount BIGINT NOT NULL CHECK (target_amount > 0),
    raised_amount BIGINT NOT NULL DEFAULT 0 CHECK (raised_amount >= 0),
    category      TEXT NOT NULL DEFAULT '',
    location      TEXT NOT NULL DEFAULT '',
    deadline      TIMESTAMPTZ,
    status        TEXT NOT NULL,
    creator_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_campaigns_creator ON campaigns (creator_id);

CREATE TABLE IF NOT EXISTS donations (
    id             UUID PRIMARY KEY,
    campaign_id    UUID NOT NULL REFERENCES campaigns (id) ON DELETE CASCADE,
    campaign_title TEXT NOT NULL,
    donor_id       UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    donor_name     TEXT NOT NULL,
    amount         BIGINT NOT NULL CHECK (amount > 0),
    payment_method TEXT NOT NULL,
    donor_country  TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_donations_donor ON donations (donor_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_donations_campaign ON donations (campaign_id, created_at DESC);

CREATE TABLE IF NOT EXISTS volunteer_posts (
    id              UUID PRIMARY KEY,
    title           TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    skills_required TEXT[],
    location        TEXT NOT NULL DEFAULT '',
    ngo_id          UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    ngo_name        TEXT NOT NULL,
    applicants      INTEGER NOT NULL DEFAULT 0 CHECK (applicants >= 0),
    status          TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_volunteer_posts_ngo ON volunteer_posts (ngo_id);

CREATE TABLE IF NOT EXISTS applications (
    id             UUID PRIMARY KEY,
    volunteer_id   UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    volunteer_name TEXT NOT NULL,
    post_id        UUID NOT NULL REFERENCES volunteer_posts (id) ON DELETE CASCADE,
    post_title     TEXT NOT NULL,
    status         TEXT NOT NULL,
    applied_at     TIMESTAMPTZ NOT NULL,
    UNIQUE (volunteer_id, post_id)
);
`

package storage

const schema = `
-- Revision topics carry the recall counters the session engine feeds on.
-- Counters only ever grow; edits touch the descriptive fields, never the
-- counters.
CREATE TABLE IF NOT EXISTS revision_topics (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    chapter_name TEXT NOT NULL,
    topic_name TEXT NOT NULL,
    hints TEXT NOT NULL DEFAULT '',
    hints_image_url TEXT,
    recall_success INTEGER NOT NULL DEFAULT 0,
    recall_fails INTEGER NOT NULL DEFAULT 0,
    last_reviewed DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS doubts (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    subject TEXT NOT NULL,
    image_url TEXT,
    is_addressed INTEGER NOT NULL DEFAULT 0,
    is_cleared INTEGER NOT NULL DEFAULT 0,
    addressed_text TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS help_requests (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    category TEXT NOT NULL,
    image_url TEXT,
    is_addressed INTEGER NOT NULL DEFAULT 0,
    is_cleared INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS lectures (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    subject TEXT NOT NULL,
    channel TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    video_url TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

-- Syllabus completion, keyed by the "Subject-Chapter-Topic" string the
-- checklist renders from.
CREATE TABLE IF NOT EXISTS syllabus_progress (
    topic_key TEXT PRIMARY KEY,
    completed INTEGER NOT NULL DEFAULT 0,
    last_updated DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS deck_progress (
    deck_id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    total INTEGER NOT NULL DEFAULT 0,
    last_updated DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS flashcards (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,

    FOREIGN KEY(deck_id) REFERENCES decks(id)
);

-- Practice-question bank. options holds a JSON array for multiple
-- choice questions; a question locks once attempted.
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    answer_type TEXT NOT NULL,
    options TEXT NOT NULL DEFAULT '[]',
    correct_answer TEXT NOT NULL,
    subject TEXT NOT NULL,
    is_attempted INTEGER NOT NULL DEFAULT 0,
    user_answer TEXT NOT NULL DEFAULT '',
    is_correct INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

-- PYQ completion per syllabus topic, keyed like syllabus_progress.
CREATE TABLE IF NOT EXISTS pyq_progress (
    topic_key TEXT PRIMARY KEY,
    completed INTEGER NOT NULL DEFAULT 0,
    last_updated DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS mood_entries (
    id TEXT PRIMARY KEY,
    mood TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

-- Motivational content uploaded in bulk from the admin area. payload is
-- the canonical JSON encoding of a validated message variant.
CREATE TABLE IF NOT EXISTS mood_messages (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mood_messages_collection ON mood_messages(collection);

-- Content sources are git repositories or local directories holding
-- markdown topic decks.
CREATE TABLE IF NOT EXISTS content_sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local',
    last_synced DATETIME
);

-- Fingerprints tie imported topics back to their content source so a
-- re-sync can tell new entries from ones it already created.
CREATE TABLE IF NOT EXISTS topic_fingerprints (
    fingerprint TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL,
    source_id INTEGER NOT NULL,

    FOREIGN KEY(topic_id) REFERENCES revision_topics(id),
    FOREIGN KEY(source_id) REFERENCES content_sources(id)
);

-- Small key-value store for UI state that used to live in ambient
-- browser storage (unlock flags, last selected view).
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

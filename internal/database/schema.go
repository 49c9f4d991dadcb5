package database

type schemaStatement struct {
	name string
	sql  string
}

var sqliteSchema = []schemaStatement{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			oauth_provider TEXT NOT NULL,
			oauth_id TEXT NOT NULL,
			cefr_level TEXT NOT NULL DEFAULT 'A1',
			preferred_story_length TEXT NOT NULL DEFAULT 'medium',
			telegram_chat_id INTEGER UNIQUE,
			telegram_link_code TEXT,
			telegram_link_expires_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE(oauth_provider, oauth_id)
		)`},
	{"words table", `
		CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			finnish TEXT NOT NULL,
			english TEXT NOT NULL,
			part_of_speech TEXT NOT NULL DEFAULT '',
			cefr_level TEXT NOT NULL,
			commonality_rank INTEGER NOT NULL,
			difficulty INTEGER NOT NULL DEFAULT 1,
			context TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE(finnish, english)
		)`},
	{"words index", `CREATE INDEX IF NOT EXISTS idx_words_level_rank ON words (cefr_level, commonality_rank)`},
	{"user_words table", `
		CREATE TABLE IF NOT EXISTS user_words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			word_id INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT 'learning',
			review_count INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			last_reviewed_at TIMESTAMP,
			next_review_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE,
			UNIQUE(user_id, word_id)
		)`},
	{"user_words index", `CREATE INDEX IF NOT EXISTS idx_user_words_category ON user_words (user_id, category)`},
	{"exam_results table", `
		CREATE TABLE IF NOT EXISTS exam_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			exam_type TEXT NOT NULL,
			target_level TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			questions_correct INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			time_spent_minutes INTEGER NOT NULL,
			sections TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`},
	{"exam_instances table", `
		CREATE TABLE IF NOT EXISTS exam_instances (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			target_level TEXT NOT NULL,
			time_limit_minutes INTEGER NOT NULL,
			questions TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`},
	{"nouns table", `
		CREATE TABLE IF NOT EXISTS nouns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nominative TEXT NOT NULL UNIQUE,
			english TEXT NOT NULL,
			cefr_level TEXT NOT NULL,
			noun_type TEXT NOT NULL DEFAULT '',
			genitive_sg TEXT NOT NULL, partitive_sg TEXT NOT NULL, illative_sg TEXT NOT NULL,
			inessive_sg TEXT NOT NULL, elative_sg TEXT NOT NULL, allative_sg TEXT NOT NULL,
			adessive_sg TEXT NOT NULL, ablative_sg TEXT NOT NULL,
			nominative_pl TEXT NOT NULL, genitive_pl TEXT NOT NULL, partitive_pl TEXT NOT NULL,
			illative_pl TEXT NOT NULL, inessive_pl TEXT NOT NULL, elative_pl TEXT NOT NULL,
			allative_pl TEXT NOT NULL, adessive_pl TEXT NOT NULL, ablative_pl TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`},
	{"verbs table", `
		CREATE TABLE IF NOT EXISTS verbs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			infinitive TEXT NOT NULL UNIQUE,
			english TEXT NOT NULL,
			verb_type INTEGER NOT NULL DEFAULT 1,
			cefr_level TEXT NOT NULL,
			present_mina TEXT NOT NULL, present_sina TEXT NOT NULL, present_han TEXT NOT NULL,
			present_me TEXT NOT NULL, present_te TEXT NOT NULL, present_he TEXT NOT NULL,
			past_mina TEXT NOT NULL, past_sina TEXT NOT NULL, past_han TEXT NOT NULL,
			past_me TEXT NOT NULL, past_te TEXT NOT NULL, past_he TEXT NOT NULL,
			conditional_mina TEXT NOT NULL, conditional_sina TEXT NOT NULL, conditional_han TEXT NOT NULL,
			conditional_me TEXT NOT NULL, conditional_te TEXT NOT NULL, conditional_he TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`},
}

var postgresSchema = []schemaStatement{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			oauth_provider TEXT NOT NULL,
			oauth_id TEXT NOT NULL,
			cefr_level TEXT NOT NULL DEFAULT 'A1',
			preferred_story_length TEXT NOT NULL DEFAULT 'medium',
			telegram_chat_id BIGINT UNIQUE,
			telegram_link_code TEXT,
			telegram_link_expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE(oauth_provider, oauth_id)
		)`},
	{"words table", `
		CREATE TABLE IF NOT EXISTS words (
			id BIGSERIAL PRIMARY KEY,
			finnish TEXT NOT NULL,
			english TEXT NOT NULL,
			part_of_speech TEXT NOT NULL DEFAULT '',
			cefr_level TEXT NOT NULL,
			commonality_rank INTEGER NOT NULL,
			difficulty INTEGER NOT NULL DEFAULT 1,
			context TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE(finnish, english)
		)`},
	{"words index", `CREATE INDEX IF NOT EXISTS idx_words_level_rank ON words (cefr_level, commonality_rank)`},
	{"user_words table", `
		CREATE TABLE IF NOT EXISTS user_words (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			word_id BIGINT NOT NULL REFERENCES words(id) ON DELETE CASCADE,
			category TEXT NOT NULL DEFAULT 'learning',
			review_count INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			last_reviewed_at TIMESTAMPTZ,
			next_review_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE(user_id, word_id)
		)`},
	{"user_words index", `CREATE INDEX IF NOT EXISTS idx_user_words_category ON user_words (user_id, category)`},
	{"exam_results table", `
		CREATE TABLE IF NOT EXISTS exam_results (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			exam_type TEXT NOT NULL,
			target_level TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			questions_correct INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			time_spent_minutes INTEGER NOT NULL,
			sections TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`},
	{"exam_instances table", `
		CREATE TABLE IF NOT EXISTS exam_instances (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			target_level TEXT NOT NULL,
			time_limit_minutes INTEGER NOT NULL,
			questions TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`},
	{"nouns table", `
		CREATE TABLE IF NOT EXISTS nouns (
			id BIGSERIAL PRIMARY KEY,
			nominative TEXT NOT NULL UNIQUE,
			english TEXT NOT NULL,
			cefr_level TEXT NOT NULL,
			noun_type TEXT NOT NULL DEFAULT '',
			genitive_sg TEXT NOT NULL, partitive_sg TEXT NOT NULL, illative_sg TEXT NOT NULL,
			inessive_sg TEXT NOT NULL, elative_sg TEXT NOT NULL, allative_sg TEXT NOT NULL,
			adessive_sg TEXT NOT NULL, ablative_sg TEXT NOT NULL,
			nominative_pl TEXT NOT NULL, genitive_pl TEXT NOT NULL, partitive_pl TEXT NOT NULL,
			illative_pl TEXT NOT NULL, inessive_pl TEXT NOT NULL, elative_pl TEXT NOT NULL,
			allative_pl TEXT NOT NULL, adessive_pl TEXT NOT NULL, ablative_pl TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`},
	{"verbs table", `
		CREATE TABLE IF NOT EXISTS verbs (
			id BIGSERIAL PRIMARY KEY,
			infinitive TEXT NOT NULL UNIQUE,
			english TEXT NOT NULL,
			verb_type INTEGER NOT NULL DEFAULT 1,
			cefr_level TEXT NOT NULL,
			present_mina TEXT NOT NULL, present_sina TEXT NOT NULL, present_han TEXT NOT NULL,
			present_me TEXT NOT NULL, present_te TEXT NOT NULL, present_he TEXT NOT NULL,
			past_mina TEXT NOT NULL, past_sina TEXT NOT NULL, past_han TEXT NOT NULL,
			past_me TEXT NOT NULL, past_te TEXT NOT NULL, past_he TEXT NOT NULL,
			conditional_mina TEXT NOT NULL, conditional_sina TEXT NOT NULL, conditional_han TEXT NOT NULL,
			conditional_me TEXT NOT NULL, conditional_te TEXT NOT NULL, conditional_he TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`},
}

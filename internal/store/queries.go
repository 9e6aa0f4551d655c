package store

// SQL statements used by PostgresStore. Named arguments keep call
// sites readable and make the statements self-documenting.

const queryCreateUser = `
INSERT INTO users (email, name, password_hash, plan, role)
VALUES (@email, @name, @password_hash, @plan, @role)
RETURNING id, created_at`

const queryGetUserByEmail = `
SELECT id, email, name, password_hash, plan, role, created_at
FROM users
WHERE email = $1`

const queryGetUserByID = `
SELECT id, email, name, password_hash, plan, role, created_at
FROM users
WHERE id = $1`

const queryUpdateUserPlan = `
UPDATE users SET plan = @plan WHERE id = @id`

const queryAddWatch = `
INSERT INTO watchlist (user_id, product_id)
VALUES (@user_id, @product_id)
ON CONFLICT (user_id, product_id) DO NOTHING
RETURNING id, created_at`

const queryGetWatch = `
SELECT id, created_at
FROM watchlist
WHERE user_id = $1 AND product_id = $2`

const queryRemoveWatch = `
DELETE FROM watchlist
WHERE user_id = @user_id AND product_id = @product_id`

const queryListWatches = `
SELECT id, user_id, product_id, created_at
FROM watchlist
WHERE user_id = $1
ORDER BY created_at DESC`

const queryListWatchedProductIDs = `
SELECT DISTINCT product_id
FROM watchlist
ORDER BY product_id`

const queryInsertUsageEvent = `
INSERT INTO usage_events (user_id, kind, asin)
VALUES (@user_id, @kind, @asin)
RETURNING id, created_at`

const queryCountUsageSince = `
SELECT kind, COUNT(*)
FROM usage_events
WHERE user_id = $1 AND created_at >= $2
GROUP BY kind`

const queryUpsertProduct = `
INSERT INTO product_snapshots (id, asin, data)
VALUES (@id, @asin, @data)
ON CONFLICT (id) DO UPDATE
SET asin = EXCLUDED.asin, data = EXCLUDED.data, updated_at = now()`

const queryGetProduct = `
SELECT data
FROM product_snapshots
WHERE id = $1`

const queryListProducts = `
SELECT data
FROM product_snapshots
ORDER BY updated_at DESC`

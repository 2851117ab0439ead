package mysql

// Rows are read back in insertion order.
const insertListingsPrefix = "INSERT INTO listings\n" +
	"  (name, host_id, host_name, neighborhood, district, latitude, longitude, room_type,\n" +
	"   price, minimum_nights, reviews, last_review, monthly_reviews, listings_count, days_available)\n" +
	"VALUES "

const listingPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

const listingColumns = 15

const clearListingsSQL = `DELETE FROM listings`

const countListingsSQL = `SELECT COUNT(*) FROM listings`

const listListingsSQL = `
SELECT
  name, host_id, host_name, neighborhood, district, latitude, longitude, room_type,
  price, minimum_nights, reviews, last_review, monthly_reviews, listings_count, days_available
FROM listings
ORDER BY id
`

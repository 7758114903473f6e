package postgres

/*
 * 'Category' is reference data seeded once from the Board Game Atlas
 * category endpoint. The id is the upstream id, not an autoincrement.
 */
type Category struct {
	ID   string `gorm:"primaryKey;size:50;not null"`
	Name string `gorm:"size:100"`
}

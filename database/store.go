package database

type Store interface {
	SaveCheckEntry(entry *CheckEntry) error
}

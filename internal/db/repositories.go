package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Categories *CategoryRepository
	Entries    *EntryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Categories: NewCategoryRepository(database),
		Entries:    NewEntryRepository(database),
	}
}

package repository

import (
	bookingRepo "asokatrip/database/repository/booking"
	catalogRepo "asokatrip/database/repository/catalog"
	contentRepo "asokatrip/database/repository/content"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewStoreBookingRepo = bookingRepo.NewStoreBookingRepo

// Re-export the PackageRepository interface and constructor.
type PackageRepository = catalogRepo.PackageRepository

var NewStorePackageRepo = catalogRepo.NewStorePackageRepo

// Re-export the content repositories.
type ContentRepos = contentRepo.Repos

var NewContentRepos = contentRepo.NewRepos

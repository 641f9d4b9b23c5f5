package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrNoRankedHistory     = errors.New("no ranked matches found, play some ranked games first")
	ErrUpstreamUnavailable = errors.New("riot api unavailable")
	ErrAlreadyLinked       = errors.New("riot account already linked to another player")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNoChampionData      = errors.New("no champion data found, sync some ranked games first")
	ErrInvalidArgument     = errors.New("invalid argument")
)

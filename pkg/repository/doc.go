// Package repository manages the local checkout of the dotfiles repository.
//
// The engine itself never talks to git: services use the Repository
// interface to clone, pull and inspect the checkout, and to learn which
// files carry local modifications so status can flag them.
package repository

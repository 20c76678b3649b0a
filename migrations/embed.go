// Package migrations ships the schema of every supported database / Contient le schéma de chaque base supportée
package migrations

import "embed"

// FS holds one directory per database type (sqlite, mysql, postgres) / Un répertoire par type de base
//
//go:embed sqlite/*.sql mysql/*.sql postgres/*.sql
var FS embed.FS

// Package metamodel maps declared entity metadata to physical storage.
//
// Build runs once over all entity descriptors. For every attribute it
// resolves the identity kind (IdentityResolver), registers the declared
// sequence and table generators (Registry), and derives the column
// (ColumnMapper). The resulting Metamodel is immutable and can be shared
// between goroutines without locking.
//
//	a, _ := sql.NewAdaptor(dialect.Postgres)
//	m, err := metamodel.Build(a, descs, metamodel.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	users := m.Entity("User")
//	users.Attribute("nickname").Column().Name // "nickname"
package metamodel

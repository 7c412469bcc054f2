package mocks

//go:generate mockery --name ViewCounter --srcpkg github.com/rendezvous-lab/rendezvous/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name UserDirectory --srcpkg github.com/rendezvous-lab/rendezvous/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ConfirmedCounter --srcpkg github.com/rendezvous-lab/rendezvous/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name EventReader --srcpkg github.com/rendezvous-lab/rendezvous/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name HitRecorder --srcpkg github.com/rendezvous-lab/rendezvous/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

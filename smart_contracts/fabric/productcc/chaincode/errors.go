// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chaincode

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("does not exist")
)

// AlreadyExistsError is returned when creating a product whose ID is already in world state
type AlreadyExistsError struct {
	ID string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("The product %s already exists", e.ID)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NotFoundError is returned when reading, updating or deleting a product that is not in world state
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("The product %s does not exist", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

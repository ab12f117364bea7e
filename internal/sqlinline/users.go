package sqlinline

const QInsertUser = `--sql a3f34e27-f4c7-4b30-a2fb-2be9af68da53
insert into users(id, username, email, password_hash, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::timestamptz);
`

const QSelectUserByID = `--sql 0e2ec7a4-b936-4008-be57-296f32cad5fa
select id, username, email, password_hash, created_at
from users
where id = $1::uuid;
`

const QSelectUserByUsername = `--sql 95d1114e-7dc5-4ebf-bb28-0935042fe08b
select id, username, email, password_hash, created_at
from users
where username = $1::text;
`

const QListUsers = `--sql d7e5a8dc-38cc-461d-accd-44d1930c4497
select id, username, email, password_hash, created_at
from users
order by created_at desc;
`
